package filter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"interpelli-viewer/internal/catalog"
	"interpelli-viewer/internal/domain"
	"interpelli-viewer/internal/prefs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchFunc func(ctx context.Context, q catalog.Query) (domain.ResultSet, error)

func (f searchFunc) Search(ctx context.Context, q catalog.Query) (domain.ResultSet, error) {
	return f(ctx, q)
}

func TestApply_ReplacesResultWholesale(t *testing.T) {
	ctx := context.Background()
	ctrl := NewController(ctx, catalog.ScopeOpen, prefs.NewMemory())
	exec := NewExecutor(ctrl, searchFunc(func(ctx context.Context, q catalog.Query) (domain.ResultSet, error) {
		return domain.ResultSet{Items: []domain.Posting{{ID: 1}}, Total: 9}, nil
	}))

	rs, err := exec.Apply(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, rs.Total)

	got, loading, lastErr := exec.Result()
	assert.Equal(t, rs, got)
	assert.False(t, loading)
	assert.Empty(t, lastErr)
}

func TestApply_StaleResponseIsDiscarded(t *testing.T) {
	ctx := context.Background()
	ctrl := NewController(ctx, catalog.ScopeOpen, prefs.NewMemory())

	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	exec := NewExecutor(ctrl, searchFunc(func(ctx context.Context, q catalog.Query) (domain.ResultSet, error) {
		switch q.Text {
		case "first":
			close(firstStarted)
			<-releaseFirst
			return domain.ResultSet{Items: []domain.Posting{}, Total: 1}, nil
		default:
			return domain.ResultSet{Items: []domain.Posting{}, Total: 2}, nil
		}
	}))

	// First apply is issued and hangs in flight.
	ctrl.SetQuery("first")
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = exec.Apply(ctx)
	}()
	<-firstStarted

	// Second apply with different parameters settles before the first.
	ctrl.SetQuery("second")
	rs, err := exec.Apply(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, rs.Total)

	// Now the first response arrives late: it must not clobber the
	// second's result.
	close(releaseFirst)
	wg.Wait()

	got, loading, _ := exec.Result()
	assert.Equal(t, 2, got.Total)
	assert.False(t, loading)
}

func TestApply_FailureKeepsPreviousResult(t *testing.T) {
	ctx := context.Background()
	ctrl := NewController(ctx, catalog.ScopeOpen, prefs.NewMemory())

	var fail bool
	exec := NewExecutor(ctrl, searchFunc(func(ctx context.Context, q catalog.Query) (domain.ResultSet, error) {
		if fail {
			return domain.ResultSet{}, errors.New("connection refused")
		}
		return domain.ResultSet{Items: []domain.Posting{{ID: 5}}, Total: 1}, nil
	}))

	_, err := exec.Apply(ctx)
	require.NoError(t, err)

	fail = true
	_, err = exec.Apply(ctx)
	require.Error(t, err)

	got, loading, lastErr := exec.Result()
	assert.Equal(t, 1, got.Total, "previous result stays on display")
	require.Len(t, got.Items, 1)
	assert.False(t, loading, "loading always clears, even on failure")
	assert.Contains(t, lastErr, "connection refused")

	// A later success clears the error state.
	fail = false
	_, err = exec.Apply(ctx)
	require.NoError(t, err)
	_, _, lastErr = exec.Result()
	assert.Empty(t, lastErr)
}

func TestLoading_TrueWhileInFlight(t *testing.T) {
	ctx := context.Background()
	ctrl := NewController(ctx, catalog.ScopeOpen, prefs.NewMemory())

	started := make(chan struct{})
	release := make(chan struct{})
	exec := NewExecutor(ctrl, searchFunc(func(ctx context.Context, q catalog.Query) (domain.ResultSet, error) {
		close(started)
		<-release
		return domain.ResultSet{Items: []domain.Posting{}}, nil
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = exec.Apply(ctx)
	}()

	<-started
	assert.True(t, exec.Loading())

	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("apply did not settle")
	}
	assert.False(t, exec.Loading())
}
