package httpapi

import (
	"net/http"

	"interpelli-viewer/internal/prefs"
)

type PrefsHandler struct {
	KV prefs.KV
}

// Location reports the persisted region context so the UI can show what
// the next page mount will restore.
func (h PrefsHandler) Location(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, prefs.LoadLocation(r.Context(), h.KV))
}
