package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
database:
  host: db.internal
  user: dispatch
  password: secret
  database: fieldops
dispatch:
  limit: 10
  top_n: 5
metrics:
  prometheus_enabled: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port, "default port applied")
	assert.Equal(t, 10, cfg.Dispatch.Limit)
	assert.Equal(t, 5, cfg.Dispatch.TopN)
	assert.True(t, cfg.Metrics.PrometheusEnabled)
	assert.Equal(t, "2112", cfg.Metrics.PrometheusPort, "default prometheus port applied")
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "database": {"host": "localhost", "database": "fieldops"},
  "dispatch": {"limit": 3}
}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Dispatch.Limit)
	assert.Equal(t, 3, cfg.Dispatch.TopN, "default top_n applied")
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
database:
  host: localhost
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Dispatch.Limit)
	assert.Equal(t, "dispatchd", cfg.MQTT.ClientID)
	assert.Equal(t, "dispatch/batch/results", cfg.MQTT.Topic)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FD_DATABASE__HOST", "override.internal")
	path := writeConfig(t, "config.yaml", `
database:
  host: original
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "override.internal", cfg.Database.Host)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", "")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadInvalidDispatchLimit(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
dispatch:
  limit: -2
`)
	_, err := Load(path)
	assert.Error(t, err)
}
