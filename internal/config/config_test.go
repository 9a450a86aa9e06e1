package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://blockchain.info", cfg.GetExplorerBaseURL())
	assert.Equal(t, 7, cfg.GetDaysToFetch())
	assert.Equal(t, ":8080", cfg.GetListen())
	assert.Equal(t, 10.0, cfg.GetRateLimitRPS())
	assert.Equal(t, 20, cfg.GetRateLimitBurst())
	assert.Equal(t, "info", cfg.GetLogLevel())
	assert.Equal(t, "auto", cfg.GetLogFormat())
	assert.Equal(t, "btcenergy", cfg.GetTopicPrefix())
}

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
explorer:
  base_url: http://localhost:9999
server:
  listen: "127.0.0.1:9000"
  rate_limit_rps: -1
log:
  level: debug
  format: json
days_to_fetch: 30
mqtt:
  enabled: true
  broker: localhost:1883
  topic_prefix: energy
home_assistant:
  enabled: true
  url: http://ha.local:5050
  token: secret
  entity_id: sensor.btc
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.GetExplorerBaseURL())
	assert.Equal(t, "127.0.0.1:9000", cfg.GetListen())
	assert.Equal(t, 0.0, cfg.GetRateLimitRPS(), "negative rps disables limiting")
	assert.Equal(t, "debug", cfg.GetLogLevel())
	assert.Equal(t, "json", cfg.GetLogFormat())
	assert.Equal(t, 30, cfg.GetDaysToFetch())
	assert.True(t, cfg.MQTT.Enabled)
	assert.Equal(t, "energy", cfg.GetTopicPrefix())
	assert.Equal(t, "sensor.btc", cfg.HomeAssistant.EntityID)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("days_to_fetch: [oops"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{DaysToFetch: 14, Server: ServerConfig{Listen: ":7000"}}

	require.NoError(t, Save(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 14, loaded.GetDaysToFetch())
	assert.Equal(t, ":7000", loaded.GetListen())
}

func TestDefaultsSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Save(path, Defaults()))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://blockchain.info", loaded.Explorer.BaseURL)
	assert.Equal(t, ":8080", loaded.Server.Listen)
	assert.Equal(t, 10.0, loaded.Server.RateLimitRPS)
	assert.Equal(t, 20, loaded.Server.RateLimitBurst)
	assert.Equal(t, "info", loaded.Log.Level)
	assert.Equal(t, "auto", loaded.Log.Format)
	assert.Equal(t, 7, loaded.DaysToFetch)
	assert.Equal(t, "btcenergy", loaded.MQTT.TopicPrefix)
	assert.False(t, loaded.MQTT.Enabled)
}
