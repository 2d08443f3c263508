package filter

import (
	"context"
	"sync"

	"interpelli-viewer/internal/catalog"
	"interpelli-viewer/internal/domain"
)

// Searcher is the catalog surface the executor needs.
type Searcher interface {
	Search(ctx context.Context, q catalog.Query) (domain.ResultSet, error)
}

// Executor turns a controller's selection into one request per explicit
// apply. Each apply gets a generation token; a response is only applied
// while its token is still the latest, so overlapping applies can settle
// in any order and the displayed result always reflects the most recent
// request. Stale responses are discarded silently.
type Executor struct {
	searcher Searcher
	ctrl     *Controller

	mu       sync.Mutex
	gen      uint64
	inflight int
	result   domain.ResultSet
	lastErr  string
}

func NewExecutor(ctrl *Controller, searcher Searcher) *Executor {
	return &Executor{
		searcher: searcher,
		ctrl:     ctrl,
		result:   domain.ResultSet{Items: []domain.Posting{}},
	}
}

// Apply snapshots the selection and issues one search. On success the
// result set is replaced wholesale. On failure the previous result stays
// on display and the error is kept for the retry affordance. The loading
// flag is cleared on every path.
func (e *Executor) Apply(ctx context.Context) (domain.ResultSet, error) {
	e.mu.Lock()
	e.gen++
	gen := e.gen
	e.inflight++
	e.mu.Unlock()

	q := e.ctrl.Query()
	rs, err := e.searcher.Search(ctx, q)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.inflight--

	if gen != e.gen {
		// A newer apply was issued while this one was in flight.
		return e.result, nil
	}
	if err != nil {
		e.lastErr = err.Error()
		return e.result, err
	}
	e.lastErr = ""
	e.result = rs
	return rs, nil
}

// Loading reports whether any apply is still in flight.
func (e *Executor) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inflight > 0
}

// Result returns the last settled result set plus the loading flag and
// the last query error ("" when the last settled apply succeeded).
func (e *Executor) Result() (domain.ResultSet, bool, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result, e.inflight > 0, e.lastErr
}
