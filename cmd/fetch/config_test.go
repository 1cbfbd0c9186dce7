package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// parseWith runs parseConfig under a throwaway app so the flags land in a
// real cli context.
func parseWith(t *testing.T, args ...string) config {
	t.Helper()
	var cfg config
	testApp := &cli.App{
		Flags: app.Flags,
		Action: func(ctx *cli.Context) error {
			var err error
			cfg, err = parseConfig(ctx)
			return err
		},
	}
	require.NoError(t, testApp.Run(append([]string{appName}, args...)))
	return cfg
}

func TestConfigDefaults(t *testing.T) {
	cfg := parseWith(t)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "production", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 10, cfg.MaxRedirects)
	assert.Empty(t, cfg.Charset)
	assert.Empty(t, cfg.Output)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("FETCH_LOG_LEVEL", "debug")
	t.Setenv("FETCH_MAX_REDIRECTS", "3")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("FETCH_CHARSET", "iso-8859-1")

	cfg := parseWith(t)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.MaxRedirects)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "iso-8859-1", cfg.Charset)
}

func TestConfigFlagBeatsEnv(t *testing.T) {
	t.Setenv("FETCH_LOG_LEVEL", "warn")
	t.Setenv("FETCH_MAX_REDIRECTS", "3")

	cfg := parseWith(t, "--log-level", "error", "--max-redirects", "7")
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, 7, cfg.MaxRedirects)
}
