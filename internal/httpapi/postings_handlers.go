package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"interpelli-viewer/internal/catalog"
)

type PostingsHandler struct {
	Catalog *catalog.Client
}

// GetByPath serves /postings/{id}. Not-found is a real state the UI
// renders, so it gets a proper 404 envelope instead of a bare error.
func (h PostingsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/postings/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid posting id")
		return
	}

	p, err := h.Catalog.Get(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		WriteError(w, r, http.StatusNotFound, "not_found", "posting not found")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "catalog_unreachable", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, p)
}
