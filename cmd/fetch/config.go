package main

import (
	"strings"
	"time"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v2"
)

const envPrefix = "FETCH_"

// config holds the knobs that may come from the environment as well as from
// flags. Flags win over environment, environment over defaults.
type config struct {
	LogLevel     string        `conf:"log_level"`
	LogFormat    string        `conf:"log_format"`
	Timeout      time.Duration `conf:"timeout"`
	MaxRedirects int           `conf:"max_redirects"`
	Charset      string        `conf:"charset"`
	Output       string        `conf:"output"`
}

var defaultConfig = map[string]interface{}{
	"log_level":     "info",
	"log_format":    "production",
	"timeout":       "30s",
	"max_redirects": 10,
}

func parseConfig(ctx *cli.Context) (config, error) {
	k := koanf.New(".")

	k.Load(confmap.Provider(defaultConfig, "."), nil)

	if err := k.Load(env.Provider(envPrefix, ".", transformEnv), nil); err != nil {
		return config{}, err
	}

	var cfg config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "conf"}); err != nil {
		return config{}, err
	}

	// flags override whatever the providers loaded
	if ctx.IsSet("timeout") {
		cfg.Timeout = ctx.Duration("timeout")
	}
	if ctx.IsSet("max-redirects") {
		cfg.MaxRedirects = ctx.Int("max-redirects")
	}
	if ctx.IsSet("charset") {
		cfg.Charset = ctx.String("charset")
	}
	if ctx.IsSet("output") {
		cfg.Output = ctx.String("output")
	}
	if ctx.IsSet("log-level") {
		cfg.LogLevel = ctx.String("log-level")
	}
	if ctx.IsSet("log-format") {
		cfg.LogFormat = ctx.String("log-format")
	}
	return cfg, nil
}

func transformEnv(s string) string {
	// FETCH_MAX_REDIRECTS -> max_redirects, __ nests if ever needed
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
