package meta

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"interpelli-viewer/internal/catalog"
)

// Source is the catalog surface the cache sits in front of.
type Source interface {
	Categories(ctx context.Context) ([]catalog.CategoryCount, error)
	Regions(ctx context.Context) ([]catalog.RegionCount, error)
	Provinces(ctx context.Context, regione string) ([]catalog.ProvinceCount, error)
	Municipalities(ctx context.Context, regione, provincia string) ([]catalog.ComuneCount, error)
}

type entry struct {
	val any
	at  time.Time
}

// Cache keeps the meta lists (categories, regions, provinces, comuni)
// warm so the UI gets them instantly. Categories churn faster than
// locations, so they get their own TTL. When a refresh fails and a stale
// copy exists, the stale copy is served.
type Cache struct {
	src         Source
	categoryTTL time.Duration
	locationTTL time.Duration

	mu sync.Mutex
	m  map[string]entry
}

func New(src Source, categoryTTL, locationTTL time.Duration) *Cache {
	return &Cache{
		src:         src,
		categoryTTL: categoryTTL,
		locationTTL: locationTTL,
		m:           make(map[string]entry),
	}
}

func (c *Cache) get(ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	e, ok := c.m[key]
	c.mu.Unlock()
	if ok && time.Since(e.at) < ttl {
		return e.val, nil
	}

	val, err := fetch(ctx)
	if err != nil {
		if ok {
			log.Printf("[meta] refresh %s failed, serving stale: %v", key, err)
			return e.val, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.m[key] = entry{val: val, at: time.Now()}
	c.mu.Unlock()
	return val, nil
}

func (c *Cache) Categories(ctx context.Context) ([]catalog.CategoryCount, error) {
	v, err := c.get(ctx, "categorie", c.categoryTTL, func(ctx context.Context) (any, error) {
		return c.src.Categories(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]catalog.CategoryCount), nil
}

func (c *Cache) Regions(ctx context.Context) ([]catalog.RegionCount, error) {
	v, err := c.get(ctx, "regioni", c.locationTTL, func(ctx context.Context) (any, error) {
		return c.src.Regions(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]catalog.RegionCount), nil
}

func (c *Cache) Provinces(ctx context.Context, regione string) ([]catalog.ProvinceCount, error) {
	key := "province?" + url.Values{"regione": {regione}}.Encode()
	v, err := c.get(ctx, key, c.locationTTL, func(ctx context.Context) (any, error) {
		return c.src.Provinces(ctx, regione)
	})
	if err != nil {
		return nil, err
	}
	return v.([]catalog.ProvinceCount), nil
}

func (c *Cache) Municipalities(ctx context.Context, regione, provincia string) ([]catalog.ComuneCount, error) {
	key := fmt.Sprintf("comuni?regione=%s&provincia=%s", url.QueryEscape(regione), url.QueryEscape(provincia))
	v, err := c.get(ctx, key, c.locationTTL, func(ctx context.Context) (any, error) {
		return c.src.Municipalities(ctx, regione, provincia)
	})
	if err != nil {
		return nil, err
	}
	return v.([]catalog.ComuneCount), nil
}

// RefreshCategories and RefreshRegions force-refresh the two lists the
// background loops keep warm. Parameterized province/comune lists refresh
// lazily on demand.
func (c *Cache) RefreshCategories(ctx context.Context) error {
	rows, err := c.src.Categories(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.m["categorie"] = entry{val: rows, at: time.Now()}
	c.mu.Unlock()
	return nil
}

func (c *Cache) RefreshRegions(ctx context.Context) error {
	rows, err := c.src.Regions(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.m["regioni"] = entry{val: rows, at: time.Now()}
	c.mu.Unlock()
	return nil
}
