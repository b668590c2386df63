package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "HTTP_ADDR", "REDIS_ADDR", "QUERY_TIMEOUT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "REPORT_WINDOW_DAYS", "ALERTS_KEEP")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 3*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, 30, cfg.ReportWindowDays)
	assert.Equal(t, 100, cfg.AlertsKeep)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	unsetEnv(t, "REPORT_WINDOW_DAYS", "QUERY_TIMEOUT")
	dir := t.TempDir()
	yaml := "HTTP_ADDR: \":9000\"\nREPORT_WINDOW_DAYS: 7\nQUERY_TIMEOUT: 5s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("HTTP_ADDR", ":9100")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.HTTPAddr)
	assert.Equal(t, 7, cfg.ReportWindowDays)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REDIS_ADDR=localhost:6380\n"), 0o600))
	unsetEnv(t, "REDIS_ADDR")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "localhost:6380", cfg.RedisAddr)
}

func TestLoad_RejectsNonPositiveSettings(t *testing.T) {
	t.Setenv("ALERTS_KEEP", "0")
	t.Setenv("RATE_LIMIT_BURST", "-1")

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALERTS_KEEP")
	assert.Contains(t, err.Error(), "RATE_LIMIT_BURST")
}
