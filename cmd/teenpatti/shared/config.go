package shared

import (
	"fmt"

	"github.com/lox/teenpatti/internal/config"
)

// LoadConfig reads and validates the config file, applying a seed override.
func LoadConfig(path string, seed *int64) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if seed != nil {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
