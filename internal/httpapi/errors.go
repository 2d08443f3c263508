package httpapi

import (
	"encoding/json"
	"net/http"
)

// APIError is the error envelope every non-2xx response carries. The UI
// branches on Code (e.g. "not_found" vs "catalog_unreachable") and shows
// Message verbatim; RequestID ties the response back to the access log.
type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError sends an APIError, stamping it with the request ID from the
// middleware so a failed call can be found in the log.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}
