package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"interpelli-viewer/internal/bookmarks"
	"interpelli-viewer/internal/catalog"
	"interpelli-viewer/internal/config"
	"interpelli-viewer/internal/events"
	"interpelli-viewer/internal/filter"
	"interpelli-viewer/internal/httpapi"
	"interpelli-viewer/internal/meta"
	"interpelli-viewer/internal/prefs"
	"interpelli-viewer/internal/scheduler"

	"github.com/gofrs/flock"
	"golang.org/x/time/rate"
)

func main() {
	// Viewer data dir: use env if provided (the UI shell can pass one),
	// else local folder.
	dataDir := os.Getenv("INTERPELLI_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One viewer per data dir. Preferences are last-write-wins with no
	// locking, which only holds if a single process owns them.
	lock := flock.New(filepath.Join(dataDir, "viewer.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("data dir lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another viewer is already running on %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		normalized, vr := config.NormalizeAndValidate(cfg)
		if !vr.OK() {
			log.Printf("config has errors: %v", vr.Errors)
		}
		for _, warn := range vr.Warnings {
			log.Printf("config warning: %s", warn)
		}
		return normalized, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	store, err := prefs.Open(filepath.Join(dataDir, "viewer.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	limiter := rate.NewLimiter(rate.Limit(cfg.Catalog.RequestsPerSec), cfg.Catalog.Burst)
	client := catalog.New(cfg.Catalog.BaseURL, time.Duration(cfg.Catalog.TimeoutSeconds)*time.Second, limiter)

	hub := events.NewHub()

	catTTL := time.Duration(cfg.Meta.CategoriesSeconds) * time.Second
	locTTL := time.Duration(cfg.Meta.LocationsSeconds) * time.Second
	metaCache := meta.New(client, catTTL, locTTL)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Keep the unparameterized meta lists warm so page mounts never wait.
	go scheduler.Every(ctx, catTTL, "meta:categorie", func(ctx context.Context) error {
		if err := metaCache.RefreshCategories(ctx); err != nil {
			return err
		}
		hub.Publish(events.MakeEvent("", events.TypeMetaRefreshed, 1, map[string]any{"list": "categorie"}))
		return nil
	})
	go scheduler.Every(ctx, locTTL, "meta:regioni", func(ctx context.Context) error {
		if err := metaCache.RefreshRegions(ctx); err != nil {
			return err
		}
		hub.Publish(events.MakeEvent("", events.TypeMetaRefreshed, 1, map[string]any{"list": "regioni"}))
		return nil
	})

	// One controller/executor pair per listing page. They share nothing
	// but the persisted location.
	pages := map[catalog.Scope]*httpapi.Page{}
	for _, scope := range []catalog.Scope{catalog.ScopeOpen, catalog.ScopeClosed} {
		ctrl := filter.NewController(ctx, scope, store)
		pages[scope] = &httpapi.Page{
			Ctrl: ctrl,
			Exec: filter.NewExecutor(ctrl, client),
		}
	}

	agg := bookmarks.New(store, client)

	mux := httpapi.NewMux(httpapi.Deps{
		Catalog:     client,
		Meta:        metaCache,
		Prefs:       store,
		Bookmarks:   agg,
		Hub:         hub,
		Pages:       pages,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	})

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.AccessLog,
		httpapi.Recover,
		httpapi.Cors,
	)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("viewer listening on http://%s (catalog=%s data=%s)", addr, cfg.Catalog.BaseURL, dataDir)
	log.Printf("shutdown token: %s", token)

	go func() {
		<-ctx.Done()
		shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shCancel()
		_ = srv.Shutdown(shCtx)
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
