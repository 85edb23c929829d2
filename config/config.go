// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration. Command-line flags override it.
type Config struct {
	RulesDir string `env:"DROPCORE_RULES_DIR" envDefault:"rules"`
	Seed     int64  `env:"DROPCORE_SEED"      envDefault:"0"`
	SaveDir  string `env:"DROPCORE_SAVE_DIR"  envDefault:"."`
	Plain    bool   `env:"DROPCORE_PLAIN"     envDefault:"false"`
	Verbose  bool   `env:"DROPCORE_VERBOSE"   envDefault:"false"`
	World    string `env:"DROPCORE_WORLD"     envDefault:"world"`
	Player   string `env:"DROPCORE_PLAYER"    envDefault:"steve"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the environment configuration with defaults applied.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
