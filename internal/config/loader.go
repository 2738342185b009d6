package config

import (
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
//  2. file (YAML) if INTERVIEW_CONFIG is set
//  3. env (prefix INTERVIEW_, double underscore for nesting:
//     INTERVIEW_LLM__BACKEND -> llm.backend)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("INTERVIEW_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider("INTERVIEW_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "INTERVIEW_"))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, ErrInvalidConfig
	}
	if cfg.Storage.Backend == "firestore" && cfg.GCP.Project == "" {
		return nil, ErrInvalidConfig
	}
	return &cfg, nil
}
