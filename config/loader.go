package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "LEARNR_"
	configFileEnv = envPrefix + "CONFIG"
)

// Load builds Settings by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) from path, or LEARNR_CONFIG when path is empty
//  3. env (prefix LEARNR_)
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(configFileEnv)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// LEARNR_DATABASE_PATH -> database_path; underscores are kept to match
	// the koanf tags
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	settings := New()
	if err := k.UnmarshalWithConf("", settings, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if problems := settings.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return settings, nil
}
