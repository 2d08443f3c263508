package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, nil)
}

func TestSearch_DecodesResultSet(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/interpelli", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("open_only"))
		w.Write([]byte(`{"items":[{"id":7,"title":"Interpello sostegno","regione":"Lazio"}],"total":42}`))
	})

	rs, err := c.Search(context.Background(), Query{Scope: ScopeOpen})
	require.NoError(t, err)
	assert.Equal(t, 42, rs.Total)
	require.Len(t, rs.Items, 1)
	assert.Equal(t, int64(7), rs.Items[0].ID)
	assert.Equal(t, "Lazio", rs.Items[0].Regione)
}

func TestSearch_AbsentItemsBecomesEmptySlice(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	rs, err := c.Search(context.Background(), Query{Scope: ScopeOpen})
	require.NoError(t, err)
	assert.NotNil(t, rs.Items)
	assert.Empty(t, rs.Items)
	assert.Equal(t, 0, rs.Total)
}

func TestSearch_NonSuccessStatusIsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.Search(context.Background(), Query{Scope: ScopeOpen})
	assert.Error(t, err)
}

func TestSearch_NonJSONBodyIsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	})

	_, err := c.Search(context.Background(), Query{Scope: ScopeOpen})
	assert.Error(t, err)
}

func TestGet_ReturnsPosting(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/interpelli/31", r.URL.Path)
		w.Write([]byte(`{"id":31,"title":"Supplenza primaria","comune":"Rieti"}`))
	})

	p, err := c.Get(context.Background(), 31)
	require.NoError(t, err)
	assert.Equal(t, int64(31), p.ID)
	assert.Equal(t, "Rieti", p.Comune)
}

func TestGet_ErrorMarkerBodyIsNotFound(t *testing.T) {
	// The catalog answers 200 with an error marker for unknown ids.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"not_found"}`))
	})

	_, err := c.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_404StatusIsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMetaEndpoints(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/meta/categorie":
			w.Write([]byte(`[{"categoria":"Sostegno","count":12},{"categoria":"ATA","count":3}]`))
		case "/meta/regioni":
			w.Write([]byte(`[{"regione":"Lazio","count":20}]`))
		case "/meta/province":
			assert.Equal(t, "Lazio", r.URL.Query().Get("regione"))
			w.Write([]byte(`[{"provincia":"RM","count":15}]`))
		case "/meta/comuni":
			assert.Equal(t, "RM", r.URL.Query().Get("provincia"))
			w.Write([]byte(`[{"comune":"Roma","count":11}]`))
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	cats, err := c.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Sostegno", cats[0].Categoria)
	assert.Equal(t, 12, cats[0].Count)

	regs, err := c.Regions(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, "Lazio", regs[0].Regione)

	provs, err := c.Provinces(ctx, "Lazio")
	require.NoError(t, err)
	require.Len(t, provs, 1)
	assert.Equal(t, "RM", provs[0].Provincia)

	coms, err := c.Municipalities(ctx, "Lazio", "RM")
	require.NoError(t, err)
	require.Len(t, coms, 1)
	assert.Equal(t, "Roma", coms[0].Comune)
}
