package filter

import (
	"context"
	"log"
	"slices"
	"sync"

	"interpelli-viewer/internal/catalog"
	"interpelli-viewer/internal/prefs"
)

// Selection is the page-scoped filter state. Categories keeps insertion
// order: that order is what the UI shows as selected chips and what the
// outbound categorie CSV follows.
type Selection struct {
	Query     string   `json:"query"`
	Regione   string   `json:"regione"`
	Provincia string   `json:"provincia"`
	Comune    string   `json:"comune"`
	Categorie []string `json:"categorie"`
}

// Controller owns one page's Selection. Each listing page (open, closed)
// has its own controller; they share nothing but the persisted location.
// Location changes write through to the preference store so the next
// session opens with the same region context. Category selection is
// deliberately never persisted.
type Controller struct {
	mu    sync.Mutex
	scope catalog.Scope
	kv    prefs.KV
	sel   Selection
}

// NewController restores the persisted location and starts with an
// otherwise empty selection.
func NewController(ctx context.Context, scope catalog.Scope, kv prefs.KV) *Controller {
	loc := prefs.LoadLocation(ctx, kv)
	return &Controller{
		scope: scope,
		kv:    kv,
		sel: Selection{
			Regione:   loc.Regione,
			Provincia: loc.Provincia,
			Comune:    loc.Comune,
		},
	}
}

func (c *Controller) Scope() catalog.Scope { return c.scope }

// Selection returns a copy; mutating the returned value does not touch
// the controller.
func (c *Controller) Selection() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	sel := c.sel
	sel.Categorie = slices.Clone(c.sel.Categorie)
	return sel
}

func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	c.sel.Query = q
	c.mu.Unlock()
}

// SetRegione resets provincia and comune unconditionally: the catalog
// filters hierarchically, and a child value left over from another
// region would silently match nothing.
func (c *Controller) SetRegione(ctx context.Context, v string) {
	c.mu.Lock()
	c.sel.Regione = v
	c.sel.Provincia = ""
	c.sel.Comune = ""
	c.persistLocation(ctx)
	c.mu.Unlock()
}

func (c *Controller) SetProvincia(ctx context.Context, v string) {
	c.mu.Lock()
	c.sel.Provincia = v
	c.persistLocation(ctx)
	c.mu.Unlock()
}

func (c *Controller) SetComune(ctx context.Context, v string) {
	c.mu.Lock()
	c.sel.Comune = v
	c.persistLocation(ctx)
	c.mu.Unlock()
}

// ToggleCategory removes the label when present, appends it when not.
// Duplicates can never accumulate. Returns whether the label is selected
// after the toggle.
func (c *Controller) ToggleCategory(label string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, got := range c.sel.Categorie {
		if got == label {
			c.sel.Categorie = slices.Delete(c.sel.Categorie, i, i+1)
			return false
		}
	}
	c.sel.Categorie = append(c.sel.Categorie, label)
	return true
}

func (c *Controller) ClearCategories() {
	c.mu.Lock()
	c.sel.Categorie = nil
	c.mu.Unlock()
}

// Query materializes the current selection into one outbound query.
func (c *Controller) Query() catalog.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return catalog.Query{
		Text:      c.sel.Query,
		Regione:   c.sel.Regione,
		Provincia: c.sel.Provincia,
		Comune:    c.sel.Comune,
		Categorie: slices.Clone(c.sel.Categorie),
		Scope:     c.scope,
	}
}

// caller holds c.mu
func (c *Controller) persistLocation(ctx context.Context) {
	loc := prefs.Location{
		Regione:   c.sel.Regione,
		Provincia: c.sel.Provincia,
		Comune:    c.sel.Comune,
	}
	if err := prefs.SaveLocation(ctx, c.kv, loc); err != nil {
		log.Printf("[filter:%s] persist location: %v", c.scope, err)
	}
}
