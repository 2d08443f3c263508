package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	_, vr := NormalizeAndValidate(Default())
	assert.True(t, vr.OK(), "errors: %v", vr.Errors)
}

func TestNormalizeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.Catalog.BaseURL = "" },
			wantErr: "catalog.base_url is required",
		},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.Catalog.BaseURL = "not-a-url" },
			wantErr: "catalog.base_url must be an absolute",
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.App.Port = 0 },
			wantErr: "app.port must be 1..65535",
		},
		{
			name:    "bad region input",
			mutate:  func(c *Config) { c.UI.RegionInput = "dropdown" },
			wantErr: "ui.region_input",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Catalog.TimeoutSeconds = 0 },
			wantErr: "catalog.timeout_seconds must be > 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			_, vr := NormalizeAndValidate(cfg)
			require.False(t, vr.OK())
			found := false
			for _, e := range vr.Errors {
				if strings.HasPrefix(e, tt.wantErr) {
					found = true
				}
			}
			assert.True(t, found, "want error %q in %v", tt.wantErr, vr.Errors)
		})
	}
}

func TestNormalize_TrimsAndDefaults(t *testing.T) {
	cfg := Default()
	cfg.Catalog.BaseURL = "  http://api.local/ "
	cfg.UI.RegionInput = ""

	out, vr := NormalizeAndValidate(cfg)
	require.True(t, vr.OK(), "errors: %v", vr.Errors)
	assert.Equal(t, "http://api.local", out.Catalog.BaseURL)
	assert.Equal(t, RegionInputText, out.UI.RegionInput)
}

func TestEnsureUserConfig_SeedsFromBuiltinDefault(t *testing.T) {
	dataDir := t.TempDir()

	path, err := EnsureUserConfig(dataDir, filepath.Join(dataDir, "no-such-default.yml"))
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().App.Port, cfg.App.Port)

	// second call returns the existing file untouched
	again, err := EnsureUserConfig(dataDir, "")
	require.NoError(t, err)
	assert.Equal(t, path, again)
}

func TestSaveAtomic_RejectsInvalidAndKeepsBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	require.NoError(t, SaveAtomic(path, Default()))

	bad := Default()
	bad.Catalog.BaseURL = ""
	assert.Error(t, SaveAtomic(path, bad))

	good := Default()
	good.App.Port = 40000
	require.NoError(t, SaveAtomic(path, good))

	_, err := os.Stat(path + ".bak")
	assert.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40000, cfg.App.Port)
}
