package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o644))
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	writeEnv(t, dir, `SERVER_ADDRESS=127.0.0.1:9000
DB_SOURCE=postgres://u:p@localhost:5432/toilets?sslmode=disable
AMBIENT_LIMIT=500
SEARCH_CACHE_TTL=30s
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.ServerAddress)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, 500, cfg.AmbientLimit)
	assert.Equal(t, 30*time.Second, cfg.SearchCacheTTL)
	assert.Equal(t, 20, cfg.IndexSearchLimit)
	assert.Equal(t, 200.0, cfg.PlaceSearchRadius)
	assert.True(t, cfg.AuthEnabled)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeEnv(t, dir, "DB_SOURCE=postgres://file\nAMBIENT_LIMIT=500\n")
	t.Setenv("AMBIENT_LIMIT", "42")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.AmbientLimit)
}

func TestLoadConfig_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("STORE_BACKEND", BackendFirestore)
	t.Setenv("FIREBASE_PROJECT_ID", "toilet-map")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, BackendFirestore, cfg.StoreBackend)
	assert.Equal(t, "toilet-map", cfg.FirebaseProjectID)
	assert.Equal(t, 1000, cfg.AmbientLimit)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		StoreBackend:      BackendPostgres,
		DBSource:          "postgres://x",
		AmbientLimit:      1000,
		IndexSearchLimit:  20,
		PlaceSearchRadius: 200,
	}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown backend", mutate: func(c *Config) { c.StoreBackend = "mysql" }, expectError: true},
		{name: "postgres without source", mutate: func(c *Config) { c.DBSource = "" }, expectError: true},
		{name: "firestore without source", mutate: func(c *Config) { c.StoreBackend = BackendFirestore; c.DBSource = "" }},
		{name: "zero ambient limit", mutate: func(c *Config) { c.AmbientLimit = 0 }, expectError: true},
		{name: "negative index limit", mutate: func(c *Config) { c.IndexSearchLimit = -1 }, expectError: true},
		{name: "zero radius", mutate: func(c *Config) { c.PlaceSearchRadius = 0 }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
