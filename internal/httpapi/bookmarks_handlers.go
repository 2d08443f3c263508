package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"interpelli-viewer/internal/bookmarks"
	"interpelli-viewer/internal/events"
)

type BookmarksHandler struct {
	Agg *bookmarks.Aggregator
	Hub *events.Hub
}

// List resolves the saved ids against the catalog. An empty bookmark set
// answers instantly without network traffic.
func (h BookmarksHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Agg.List(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "catalog_unreachable", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"ids":   h.Agg.IDs(r.Context()),
		"items": items,
	})
}

func (h BookmarksHandler) Add(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.ID <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "id is required")
		return
	}

	if err := h.Agg.Add(r.Context(), in.ID); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "prefs_write_failed", err.Error())
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeBookmarkAdded, 1, map[string]any{"id": in.ID}))
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "id": in.ID})
}

func (h BookmarksHandler) RemoveByPath(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/bookmarks/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid posting id")
		return
	}

	if err := h.Agg.Remove(r.Context(), id); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "prefs_write_failed", err.Error())
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeBookmarkRemoved, 1, map[string]any{"id": id}))
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id})
}
