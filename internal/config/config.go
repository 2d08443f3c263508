package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Catalog struct {
		BaseURL        string  `yaml:"base_url" json:"base_url"`
		TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		RequestsPerSec float64 `yaml:"requests_per_sec" json:"requests_per_sec"`
		Burst          int     `yaml:"burst" json:"burst"`
	} `yaml:"catalog" json:"catalog"`

	Meta struct {
		CategoriesSeconds int `yaml:"categories_seconds" json:"categories_seconds"`
		LocationsSeconds  int `yaml:"locations_seconds" json:"locations_seconds"`
	} `yaml:"meta" json:"meta"`

	UI struct {
		// RegionInput picks how the UI edits the region filter:
		// "text" for a free-text field, "options" for a selector fed by
		// /meta/regioni. Both are supported; the UI chooses via config.
		RegionInput string `yaml:"region_input" json:"region_input"`
	} `yaml:"ui" json:"ui"`
}

const (
	RegionInputText    = "text"
	RegionInputOptions = "options"
)

func Default() Config {
	var cfg Config
	cfg.App.Port = 38472
	cfg.Catalog.BaseURL = "http://127.0.0.1:8000"
	cfg.Catalog.TimeoutSeconds = 20
	cfg.Catalog.RequestsPerSec = 4
	cfg.Catalog.Burst = 8
	cfg.Meta.CategoriesSeconds = 30
	cfg.Meta.LocationsSeconds = 300
	cfg.UI.RegionInput = RegionInputText
	return cfg
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
