package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadCLIConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadCLIConfig("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.BackendURL)
	assert.Equal(t, defaultPollInterval, cfg.PollInterval)
	assert.Equal(t, defaultRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, 24, cfg.HistorySize)
	assert.Equal(t, defaultAPIAddr, cfg.APIAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogMode)
	assert.Empty(t, cfg.Endpoints)
}

func TestLoadCLIConfig_File(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
backend-url: https://meshery.example.com
poll-interval: 30s
request-timeout: 2s
max-concurrent: 4
insecure: true
token: abc
endpoints:
  linkerd:
    status: /api/v2/linkerd/status
`)

	cfg, err := loadCLIConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://meshery.example.com", cfg.BackendURL)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 4, cfg.MaxConcurrent)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, "abc", cfg.Token)
	assert.Equal(t, "/api/v2/linkerd/status", cfg.Endpoints["linkerd"]["status"])
}

func TestLoadCLIConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, "backend-url: http://from-file:9081\npoll-interval: 30s\n")
	t.Setenv("MESHIFY_BACKEND_URL", "http://from-env:9081")
	t.Setenv("MESHIFY_POLL_INTERVAL", "3s")

	cfg, err := loadCLIConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:9081", cfg.BackendURL)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
}

func TestLoadCLIConfig_MissingExplicitFileTolerated(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := loadCLIConfig(filepath.Join(t.TempDir(), "absent.yml"))
	assert.NoError(t, err)
}

func TestLoadCLIConfig_Invalid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name string
		body string
	}{
		{"zero interval", "poll-interval: 0s\n"},
		{"bad url", "backend-url: not a url\n"},
		{"bad log level", "log-level: loud\n"},
		{"unknown view override", "endpoints:\n  consul:\n    status: /x\n"},
		{"malformed yaml", "backend-url: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadCLIConfig(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}
