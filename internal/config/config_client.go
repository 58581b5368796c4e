package config

import (
	"fmt"
	"time"
)

// ClientConfig is the view of the configuration used by favsyncctl.
type ClientConfig struct {
	// HTTPAddress is the daemon address.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
	// LogFile is where the CLI writes its logs.
	LogFile string
	// LogLevel is the minimal log level.
	LogLevel string
}

// GetClientConfig builds and validates the CLI configuration. overrides
// carries values parsed from the CLI's own flags and has the highest
// priority; it may be nil.
func GetClientConfig(overrides *StructuredConfig) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withOverrides(overrides).
		withFile().
		withDefaults().
		merged()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		HTTPAddress:    cfg.Adapter.HTTPAddress,
		RequestTimeout: cfg.Adapter.RequestTimeout,
		LogFile:        cfg.Adapter.LogFile,
		LogLevel:       cfg.App.LogLevel,
	}

	return clientCfg, clientCfg.validate()
}
