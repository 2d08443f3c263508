package bookmarks

import (
	"context"
	"errors"
	"log"
	"slices"
	"strconv"

	"interpelli-viewer/internal/catalog"
	"interpelli-viewer/internal/domain"
	"interpelli-viewer/internal/prefs"

	"golang.org/x/sync/errgroup"
)

const maxConcurrentLookups = 8

// Getter is the catalog surface the aggregator needs.
type Getter interface {
	Get(ctx context.Context, id int64) (domain.Posting, error)
}

// Aggregator assembles the saved-postings view: it reads the bookmarked
// id list from the preference store and resolves each id against the
// catalog.
type Aggregator struct {
	kv      prefs.KV
	catalog Getter
}

func New(kv prefs.KV, getter Getter) *Aggregator {
	return &Aggregator{kv: kv, catalog: getter}
}

// List resolves every bookmarked id concurrently and returns the postings
// in the original bookmark order, whatever order the lookups complete in.
// An empty bookmark set short-circuits without touching the network. Ids
// the catalog no longer knows, and ids that are not numbers, are dropped.
func (a *Aggregator) List(ctx context.Context) ([]domain.Posting, error) {
	ids := prefs.LoadBookmarkIDs(ctx, a.kv)
	if len(ids) == 0 {
		return []domain.Posting{}, nil
	}

	slots := make([]*domain.Posting, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, raw := range ids {
		i := i
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Printf("[bookmarks] skipping malformed id %q", raw)
			continue
		}
		g.Go(func() error {
			p, err := a.catalog.Get(gctx, id)
			if errors.Is(err, catalog.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			slots[i] = &p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]domain.Posting, 0, len(ids))
	for _, p := range slots {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

// IDs returns the raw bookmarked id list in insertion order.
func (a *Aggregator) IDs(ctx context.Context) []string {
	return prefs.LoadBookmarkIDs(ctx, a.kv)
}

// Add appends id to the bookmark set if not already present.
func (a *Aggregator) Add(ctx context.Context, id int64) error {
	raw := strconv.FormatInt(id, 10)
	ids := prefs.LoadBookmarkIDs(ctx, a.kv)
	if slices.Contains(ids, raw) {
		return nil
	}
	return prefs.SaveBookmarkIDs(ctx, a.kv, append(ids, raw))
}

// Remove drops id from the bookmark set; removing an absent id is a no-op.
func (a *Aggregator) Remove(ctx context.Context, id int64) error {
	raw := strconv.FormatInt(id, 10)
	ids := prefs.LoadBookmarkIDs(ctx, a.kv)
	kept := slices.DeleteFunc(slices.Clone(ids), func(s string) bool { return s == raw })
	if len(kept) == len(ids) {
		return nil
	}
	return prefs.SaveBookmarkIDs(ctx, a.kv, kept)
}

// Toggle adds the id when absent and removes it when present, reporting
// whether the id is bookmarked afterwards.
func (a *Aggregator) Toggle(ctx context.Context, id int64) (bool, error) {
	raw := strconv.FormatInt(id, 10)
	if slices.Contains(prefs.LoadBookmarkIDs(ctx, a.kv), raw) {
		return false, a.Remove(ctx, id)
	}
	return true, a.Add(ctx, id)
}
