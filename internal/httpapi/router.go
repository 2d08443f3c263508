package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs
// srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Filter state + listing queries (open and closed pages)
	fh := FiltersHandler{Pages: d.Pages, Hub: d.Hub}
	mux.HandleFunc("/filters/", fh.Route)
	mux.HandleFunc("/results/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: fh.Results, // expects /results/{scope}
	}))

	// Posting detail
	ph := PostingsHandler{Catalog: d.Catalog}
	mux.HandleFunc("/postings/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.GetByPath,
	}))

	// Bookmarks
	bh := BookmarksHandler{Agg: d.Bookmarks, Hub: d.Hub}
	mux.HandleFunc("/bookmarks", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  bh.List,
		http.MethodPost: bh.Add,
	}))
	mux.HandleFunc("/bookmarks/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: bh.RemoveByPath, // expects /bookmarks/{id}
	}))

	// Meta lists (served from the cache, not the catalog directly)
	mh := MetaHandler{Meta: d.Meta}
	mux.HandleFunc("/meta/categorie", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: mh.Categories,
	}))
	mux.HandleFunc("/meta/regioni", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: mh.Regions,
	}))
	mux.HandleFunc("/meta/province", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: mh.Provinces,
	}))
	mux.HandleFunc("/meta/comuni", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: mh.Municipalities,
	}))

	// Persisted location
	prh := PrefsHandler{KV: d.Prefs}
	mux.HandleFunc("/prefs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: prh.Location,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	return mux
}
