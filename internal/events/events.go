package events

import (
	"encoding/json"
	"time"
)

// Event types the viewer publishes so the UI can re-render without
// polling.
const (
	TypeResultsUpdated  = "results_updated"
	TypeQueryFailed     = "query_failed"
	TypeBookmarkAdded   = "bookmark_added"
	TypeBookmarkRemoved = "bookmark_removed"
	TypeMetaRefreshed   = "meta_refreshed"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
