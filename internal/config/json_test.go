package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRawJSON(t *testing.T, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))
	return path
}

func TestParseJSON_Success(t *testing.T) {
	path := writeRawJSON(t, `{
		"app": {"session_sign_key": "k", "session_duration": "48h", "argon_threads": 4},
		"storage": {"db": {"driver": "pgx", "dsn": "postgres://localhost/shipy"}},
		"server": {"http_address": ":9090", "request_timeout": "20s", "secure_cookies": true},
		"throttle": {"backend": "memory", "max_failures": 7, "window": "1h"},
		"workers": {"session_cleanup_interval": "2h", "throttle_sweep_interval": 60000000000}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "k", cfg.App.SessionSignKey)
	assert.Equal(t, 48*time.Hour, cfg.App.SessionDuration)
	assert.Equal(t, uint8(4), cfg.App.ArgonThreads)
	assert.Equal(t, DriverPostgres, cfg.Storage.DB.Driver)
	assert.Equal(t, ":9090", cfg.Server.HTTPAddress)
	assert.Equal(t, 20*time.Second, cfg.Server.RequestTimeout)
	assert.True(t, cfg.Server.SecureCookies)
	assert.Equal(t, 7, cfg.Throttle.MaxFailures)
	assert.Equal(t, time.Hour, cfg.Throttle.Window)
	assert.Equal(t, 2*time.Hour, cfg.Workers.SessionCleanupInterval)
	assert.Equal(t, time.Minute, cfg.Workers.ThrottleSweepInterval)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	_, err := parseJSON(writeRawJSON(t, `{not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	_, err := parseJSON(writeRawJSON(t, `{"throttle": {"window": "soon"}}`))
	require.Error(t, err)
}

func TestParseJSON_EmptyObject(t *testing.T) {
	cfg, err := parseJSON(writeRawJSON(t, `{}`))
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := Duration(90 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}
