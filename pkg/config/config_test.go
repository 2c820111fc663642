package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvPort, "")
	t.Setenv(EnvDatabaseURL, "")
	t.Setenv(EnvDatabaseName, "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.Empty(t, cfg.MongoDB.URI)
	assert.Equal(t, 10*time.Second, cfg.MongoDB.ConnectTimeout)
	assert.True(t, cfg.API.MaskReadErrors)
	assert.Equal(t, []string{"*"}, cfg.API.CORSAllowOrigins)
	assert.Equal(t, 5*time.Second, cfg.Diagnostics.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvDatabaseURL, "mongodb://db:27017")
	t.Setenv(EnvDatabaseName, "goldshop")
	t.Setenv("GOLDSHOP_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoDB.URI)
	assert.Equal(t, "goldshop", cfg.MongoDB.Database)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_File(t *testing.T) {
	t.Setenv(EnvPort, "")
	t.Setenv(EnvDatabaseURL, "")
	t.Setenv(EnvDatabaseName, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  port: 8181
mongodb:
  uri: mongodb://localhost:27017
  database: shop
  connect_timeout: 3s
api:
  mask_read_errors: false
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "shop", cfg.MongoDB.Database)
	assert.Equal(t, 3*time.Second, cfg.MongoDB.ConnectTimeout)
	assert.False(t, cfg.API.MaskReadErrors)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv(EnvPort, "70000")
	_, err = Load("")
	assert.Error(t, err)
}
