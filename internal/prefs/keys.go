package prefs

import (
	"context"
	"encoding/json"
)

// Persisted keys. The names match what the catalog's web frontend always
// used in localStorage, so the shapes stay interchangeable.
const (
	KeyLocation  = "prefs"     // JSON object {regione, provincia, comune}
	KeyBookmarks = "preferiti" // JSON array of posting id strings
)

// Location is the remembered region/province/municipality selection.
// It is written through on every change and restored on the next start.
type Location struct {
	Regione   string `json:"regione"`
	Provincia string `json:"provincia"`
	Comune    string `json:"comune"`
}

// LoadLocation returns the persisted location, or the zero value when the
// key is absent or holds malformed JSON. Malformed state never errors out:
// it degrades to defaults.
func LoadLocation(ctx context.Context, kv KV) Location {
	var loc Location
	raw, ok, err := kv.Get(ctx, KeyLocation)
	if err != nil || !ok {
		return Location{}
	}
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		return Location{}
	}
	return loc
}

func SaveLocation(ctx context.Context, kv KV, loc Location) error {
	b, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	return kv.Set(ctx, KeyLocation, string(b))
}

// LoadBookmarkIDs returns the saved posting ids in insertion order.
// Absent or malformed state degrades to an empty list.
func LoadBookmarkIDs(ctx context.Context, kv KV) []string {
	raw, ok, err := kv.Get(ctx, KeyBookmarks)
	if err != nil || !ok {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	return ids
}

func SaveBookmarkIDs(ctx context.Context, kv KV, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return kv.Set(ctx, KeyBookmarks, string(b))
}
