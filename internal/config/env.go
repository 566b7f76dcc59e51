package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv applies BOOTHVPM_* environment overrides onto target. Fields whose
// variables are unset keep their current values.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
