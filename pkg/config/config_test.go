package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":50051", cfg.Server.GRPCAddr)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Server.Reflection)
	assert.False(t, cfg.Lookup.RequireID)
	assert.Equal(t, "static", cfg.Source.Kind)
	assert.Equal(t, "warehouse-atlas.db", cfg.Source.DBPath)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  grpc_addr: ":6565"
  shutdown_timeout: 3s
log:
  level: debug
lookup:
  require_id: true
source:
  kind: memory
  catalog: s3://inventory/catalog.yaml
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("WAREHOUSE_SERVER_HTTP_ADDR", ":9090")
	t.Setenv("WAREHOUSE_SOURCE_KIND", "duckdb")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":6565", cfg.Server.GRPCAddr)
	assert.Equal(t, ":9090", cfg.Server.HTTPAddr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Lookup.RequireID)
	assert.Equal(t, "duckdb", cfg.Source.Kind)
	assert.Equal(t, "s3://inventory/catalog.yaml", cfg.Source.Catalog)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid yaml", content: "server: [grpc_addr"},
		{name: "invalid log level", content: "log:\n  level: loud\n"},
		{name: "empty grpc addr", content: "server:\n  grpc_addr: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
