package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overrides cfg with the KEEPER_* variables that are set.
func parseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
