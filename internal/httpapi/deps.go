package httpapi

import (
	"sync/atomic"

	"interpelli-viewer/internal/bookmarks"
	"interpelli-viewer/internal/catalog"
	"interpelli-viewer/internal/config"
	"interpelli-viewer/internal/events"
	"interpelli-viewer/internal/filter"
	"interpelli-viewer/internal/meta"
	"interpelli-viewer/internal/prefs"
)

// Page is one listing view: its filter controller plus the executor that
// runs its applies. The open and closed pages are independent instances.
type Page struct {
	Ctrl *filter.Controller
	Exec *filter.Executor
}

type Deps struct {
	Catalog   *catalog.Client
	Meta      *meta.Cache
	Prefs     prefs.KV
	Bookmarks *bookmarks.Aggregator
	Hub       *events.Hub

	Pages map[catalog.Scope]*Page

	// Config persistence
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
