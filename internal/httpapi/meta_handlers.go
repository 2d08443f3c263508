package httpapi

import (
	"net/http"

	"interpelli-viewer/internal/meta"
)

type MetaHandler struct {
	Meta *meta.Cache
}

func (h MetaHandler) Categories(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Meta.Categories(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "catalog_unreachable", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}

func (h MetaHandler) Regions(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Meta.Regions(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "catalog_unreachable", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}

func (h MetaHandler) Provinces(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Meta.Provinces(r.Context(), r.URL.Query().Get("regione"))
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "catalog_unreachable", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}

func (h MetaHandler) Municipalities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.Meta.Municipalities(r.Context(), q.Get("regione"), q.Get("provincia"))
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "catalog_unreachable", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}
