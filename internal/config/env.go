package config

import (
	"fmt"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

const envPrefix = "FAVSYNC_"

// parseEnv fills cfg from the environment. Fields map through the `env` and
// `envPrefix` tags of [StructuredConfig]; a FAVSYNC_ prefix is accepted
// in front of every variable, and an unprefixed variable wins when both are
// set.
func parseEnv(cfg *StructuredConfig) error {
	prefixed := &StructuredConfig{}
	if err := env.ParseWithOptions(prefixed, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return mergeEnv(cfg, prefixed)
}

func mergeEnv(cfg, prefixed *StructuredConfig) error {
	if err := mergo.Merge(cfg, prefixed); err != nil {
		return fmt.Errorf("error merging prefixed env configs: %w", err)
	}
	return nil
}
