package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "make10.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = "127.0.0.1:9000"

[database]
path = "/tmp/lookups.db"

[cache]
strategy = "transient"

[log]
level = "debug"
development = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "/tmp/lookups.db", cfg.Database.Path)
	assert.Equal(t, "transient", cfg.Cache.Strategy)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "[log]\nlevel = \"warn\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, "cached", cfg.Cache.Strategy)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[database]\npath = \"file.db\"\n[cache]\nstrategy = \"cached\"\n")
	t.Setenv("DB_PATH", "env.db")
	t.Setenv("MAKE10_STRATEGY", "transient")
	t.Setenv("MAKE10_ADDR", ":9999")
	t.Setenv("MAKE10_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.Database.Path)
	assert.Equal(t, "transient", cfg.Cache.Strategy)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed toml", content: "[server\naddr = 1"},
		{name: "unknown strategy", content: "[cache]\nstrategy = \"lru\"\n"},
		{name: "unknown level", content: "[log]\nlevel = \"loud\"\n"},
		{name: "empty addr", content: "[server]\naddr = \"\"\n"},
		{name: "empty db path", content: "[database]\npath = \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestValidate_DisabledDatabase(t *testing.T) {
	cfg := Defaults()
	cfg.Database.Path = ""
	cfg.Database.Disable = true
	assert.NoError(t, cfg.Validate())
}
