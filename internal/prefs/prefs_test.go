package prefs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSetRoundtrip(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "viewer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", "v1"))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	// last write wins
	require.NoError(t, s.Set(ctx, "k", "v2"))
	v, _, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
}

func TestLocation_RoundtripAndDegrade(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	assert.Equal(t, Location{}, LoadLocation(ctx, kv))

	loc := Location{Regione: "Lazio", Provincia: "RM", Comune: "Roma"}
	require.NoError(t, SaveLocation(ctx, kv, loc))
	assert.Equal(t, loc, LoadLocation(ctx, kv))

	// malformed state degrades to defaults, never errors
	require.NoError(t, kv.Set(ctx, KeyLocation, `{"regione": 12`))
	assert.Equal(t, Location{}, LoadLocation(ctx, kv))
}

func TestBookmarkIDs_RoundtripAndDegrade(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	assert.Empty(t, LoadBookmarkIDs(ctx, kv))

	require.NoError(t, SaveBookmarkIDs(ctx, kv, []string{"3", "1", "2"}))
	assert.Equal(t, []string{"3", "1", "2"}, LoadBookmarkIDs(ctx, kv))

	require.NoError(t, kv.Set(ctx, KeyBookmarks, `not json`))
	assert.Empty(t, LoadBookmarkIDs(ctx, kv))

	// nil saves as an empty array, not null
	require.NoError(t, SaveBookmarkIDs(ctx, kv, nil))
	raw, ok, err := kv.Get(ctx, KeyBookmarks)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", raw)
}
