package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// defaultConfigPath is tried when CONFIG_PATH is not set.
const defaultConfigPath = "./config.yaml"

// Load reads configuration from a YAML file and environment variables and
// validates the result. Priority: ENV > YAML > defaults (env-default tags).
//
// The YAML path comes from CONFIG_PATH. When CONFIG_PATH is unset and no
// ./config.yaml exists, the file step is skipped and configuration comes
// from ENV + defaults alone; an explicitly configured path that does not
// exist is an error.
func Load() (*Config, error) {
	var cfg Config

	path, explicit := os.LookupEnv("CONFIG_PATH")
	if path == "" {
		explicit = false
		path = defaultConfigPath
	}

	switch _, err := os.Stat(path); {
	case err == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}
