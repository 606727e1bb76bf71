package config

import (
	"context"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SCORESHEET_CONFIG is set
//  3. env (prefix SCORESHEET_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SCORESHEET_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, wrapLoad(err)
		}
	}

	// Environment variables: SCORESHEET_ADDR, SCORESHEET_DB_DRIVER, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("SCORESHEET_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "scoresheet_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, wrapLoad(err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, wrapLoad(err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return ErrEmptyAddr
	}
	switch c.DBDriver {
	case "memory", "sqlite", "postgres":
	default:
		return ErrBadDriver
	}
	if c.DBDriver != "memory" && c.DBDSN == "" {
		return ErrMissingDSN
	}
	return nil
}
