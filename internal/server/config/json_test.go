package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseJson_OverlaysPresentKeys(t *testing.T) {
	path := writeTempJSON(t, `{"endpoint_addr":"127.0.0.1:9000","memory":true,"shutdown_timeout":2000000000}`)

	var cfg Config
	cfg.LoadDefaults()
	require.NoError(t, parseJson(&cfg, []string{"-c", path}))

	assert.Equal(t, "127.0.0.1:9000", cfg.EndpointAddr)
	assert.True(t, cfg.Memory)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func Test_parseJson_ExplicitFalseMemory(t *testing.T) {
	path := writeTempJSON(t, `{"memory":false}`)

	cfg := Config{Memory: true}
	require.NoError(t, parseJson(&cfg, []string{"-config=" + path}))

	assert.False(t, cfg.Memory)
}

func Test_parseJson_NoFlagIsNoop(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()
	want := cfg

	require.NoError(t, parseJson(&cfg, []string{"-a", ":1"}))
	assert.Equal(t, want, cfg)
}

func Test_parseJson_InvalidJSON(t *testing.T) {
	path := writeTempJSON(t, `{"endpoint_addr":`)

	var cfg Config
	err := parseJson(&cfg, []string{"-c", path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
