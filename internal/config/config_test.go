package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, 100, cfg.Data.DefaultPreviewRows)
	assert.Equal(t, 1000, cfg.Data.MaxPreviewRows)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.NoError(t, cfg.validate())
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheetviz.yml")
	content := "server:\n  port: 9090\ndata:\n  dir: /srv/sheets\n  default_preview_rows: 50\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("SHEETVIZ_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/srv/sheets", cfg.Data.Dir)
	assert.Equal(t, 50, cfg.Data.DefaultPreviewRows)
	// Untouched values keep their defaults.
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheetviz.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644))
	t.Setenv("SHEETVIZ_CONFIG_FILE", path)
	t.Setenv("SHEETVIZ_SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "port too low", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "port too high", mutate: func(c *Config) { c.Server.Port = 70000 }},
		{name: "empty data dir", mutate: func(c *Config) { c.Data.Dir = "" }},
		{name: "zero preview rows", mutate: func(c *Config) { c.Data.DefaultPreviewRows = 0 }},
		{name: "default above max", mutate: func(c *Config) { c.Data.DefaultPreviewRows = 2000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.validate())
		})
	}
}
