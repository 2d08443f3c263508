package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything wrong or
// suspicious with it, structured so the UI can show it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Catalog.BaseURL = strings.TrimRight(strings.TrimSpace(out.Catalog.BaseURL), "/")
	out.UI.RegionInput = strings.ToLower(strings.TrimSpace(out.UI.RegionInput))
	if out.UI.RegionInput == "" {
		out.UI.RegionInput = RegionInputText
	}

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Catalog.BaseURL == "" {
		res.addErr("catalog.base_url is required")
	} else {
		u, err := url.Parse(out.Catalog.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			res.addErr("catalog.base_url must be an absolute http(s) URL, got %q", out.Catalog.BaseURL)
		}
	}
	if out.Catalog.TimeoutSeconds <= 0 {
		res.addErr("catalog.timeout_seconds must be > 0")
	}
	if out.Catalog.RequestsPerSec <= 0 {
		res.addErr("catalog.requests_per_sec must be > 0")
	}
	if out.Catalog.Burst < 1 {
		res.addErr("catalog.burst must be >= 1")
	}

	if out.Meta.CategoriesSeconds <= 0 {
		res.addErr("meta.categories_seconds must be > 0")
	} else if out.Meta.CategoriesSeconds < 5 {
		res.addWarn("meta.categories_seconds is very low (%d) and may hammer the catalog.", out.Meta.CategoriesSeconds)
	}
	if out.Meta.LocationsSeconds <= 0 {
		res.addErr("meta.locations_seconds must be > 0")
	}

	if out.UI.RegionInput != RegionInputText && out.UI.RegionInput != RegionInputOptions {
		res.addErr("ui.region_input must be %q or %q", RegionInputText, RegionInputOptions)
	}

	return out, res
}
