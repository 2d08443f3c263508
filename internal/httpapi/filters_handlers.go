package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"interpelli-viewer/internal/catalog"
	"interpelli-viewer/internal/domain"
	"interpelli-viewer/internal/events"
)

type FiltersHandler struct {
	Pages map[catalog.Scope]*Page
	Hub   *events.Hub
}

// Route dispatches the /filters/{scope} subtree:
//
//	GET   /filters/{scope}                    current selection + result state
//	PATCH /filters/{scope}                    set filter fields
//	POST  /filters/{scope}/apply              run the query
//	POST  /filters/{scope}/categories/toggle  toggle one category label
func (h FiltersHandler) Route(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/filters/"), "/")
	parts := strings.Split(rest, "/")

	scope, err := catalog.ParseScope(parts[0])
	if err != nil {
		WriteError(w, r, http.StatusNotFound, "unknown_scope", "scope must be open or closed")
		return
	}
	page, ok := h.Pages[scope]
	if !ok {
		WriteError(w, r, http.StatusNotFound, "unknown_scope", "no such page")
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.get(w, r, page)
	case len(parts) == 1 && r.Method == http.MethodPatch:
		h.patch(w, r, page)
	case len(parts) == 2 && parts[1] == "apply" && r.Method == http.MethodPost:
		h.apply(w, r, scope, page)
	case len(parts) == 3 && parts[1] == "categories" && parts[2] == "toggle" && r.Method == http.MethodPost:
		h.toggleCategory(w, r, page)
	case len(parts) == 1 || (len(parts) == 2 && parts[1] == "apply") || (len(parts) == 3 && parts[1] == "categories"):
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	default:
		WriteError(w, r, http.StatusNotFound, "not_found", "no such route")
	}
}

// Results serves /results/{scope}: the last settled result set plus the
// loading flag and last query error. It never re-runs the query, so the
// UI can re-render after an SSE event or offer a retry after a failed
// apply without touching the catalog.
func (h FiltersHandler) Results(w http.ResponseWriter, r *http.Request) {
	scopeStr := strings.Trim(strings.TrimPrefix(r.URL.Path, "/results/"), "/")
	scope, err := catalog.ParseScope(scopeStr)
	if err != nil {
		WriteError(w, r, http.StatusNotFound, "unknown_scope", "scope must be open or closed")
		return
	}
	page, ok := h.Pages[scope]
	if !ok {
		WriteError(w, r, http.StatusNotFound, "unknown_scope", "no such page")
		return
	}

	rs, loading, lastErr := page.Exec.Result()
	items := rs.Items
	if items == nil {
		items = []domain.Posting{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"items":   items,
		"total":   rs.Total,
		"loading": loading,
		"error":   lastErr,
	})
}

func (h FiltersHandler) get(w http.ResponseWriter, r *http.Request, page *Page) {
	rs, loading, lastErr := page.Exec.Result()
	WriteJSON(w, http.StatusOK, map[string]any{
		"scope":     page.Ctrl.Scope(),
		"selection": page.Ctrl.Selection(),
		"loading":   loading,
		"error":     lastErr,
		"total":     rs.Total,
	})
}

func (h FiltersHandler) patch(w http.ResponseWriter, r *http.Request, page *Page) {
	// Pointer fields so an absent key leaves that filter untouched.
	var in struct {
		Query     *string `json:"query"`
		Regione   *string `json:"regione"`
		Provincia *string `json:"provincia"`
		Comune    *string `json:"comune"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	ctx := r.Context()
	if in.Query != nil {
		page.Ctrl.SetQuery(*in.Query)
	}
	if in.Regione != nil {
		page.Ctrl.SetRegione(ctx, *in.Regione)
	}
	if in.Provincia != nil {
		page.Ctrl.SetProvincia(ctx, *in.Provincia)
	}
	if in.Comune != nil {
		page.Ctrl.SetComune(ctx, *in.Comune)
	}

	WriteJSON(w, http.StatusOK, map[string]any{"selection": page.Ctrl.Selection()})
}

func (h FiltersHandler) toggleCategory(w http.ResponseWriter, r *http.Request, page *Page) {
	var in struct {
		Categoria string `json:"categoria"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Categoria) == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "categoria is required")
		return
	}

	selected := page.Ctrl.ToggleCategory(in.Categoria)
	WriteJSON(w, http.StatusOK, map[string]any{
		"selected":  selected,
		"categorie": page.Ctrl.Selection().Categorie,
	})
}

func (h FiltersHandler) apply(w http.ResponseWriter, r *http.Request, scope catalog.Scope, page *Page) {
	reqID := RequestIDFrom(r.Context())

	rs, err := page.Exec.Apply(r.Context())
	if err != nil {
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeQueryFailed, 1, map[string]any{"scope": scope}))
		WriteError(w, r, http.StatusBadGateway, "query_failed", err.Error())
		return
	}

	h.Hub.Publish(events.MakeEvent(reqID, events.TypeResultsUpdated, 1, map[string]any{
		"scope": scope,
		"count": len(rs.Items),
		"total": rs.Total,
	}))
	WriteJSON(w, http.StatusOK, rs)
}
