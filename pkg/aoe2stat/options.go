package aoe2stat

import (
	"log/slog"
	"time"
)

// LoadOption configures Load behavior using the functional options pattern.
type LoadOption func(*loadConfig)

// loadConfig holds internal configuration for loading.
type loadConfig struct {
	decoderCommand string
	decodeTimeout  time.Duration
	logger         *slog.Logger
}

// defaultLoadConfig returns a loadConfig with sensible defaults.
func defaultLoadConfig() *loadConfig {
	return &loadConfig{
		decodeTimeout: 2 * time.Minute,
	}
}

// applyLoadOptions applies functional options to a loadConfig.
func applyLoadOptions(opts []LoadOption) *loadConfig {
	cfg := defaultLoadConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithDecoderCommand sets the external decoder command used for
// .aoe2record files. If not set, the AOE2STAT_DECODER environment
// variable and then the built-in default are consulted.
func WithDecoderCommand(command string) LoadOption {
	return func(c *loadConfig) {
		c.decoderCommand = command
	}
}

// WithDecodeTimeout bounds how long the external decoder may run.
// Default: 2 minutes.
func WithDecodeTimeout(d time.Duration) LoadOption {
	return func(c *loadConfig) {
		if d > 0 {
			c.decodeTimeout = d
		}
	}
}

// WithLogger sets the slog logger for debug output.
// If nil (default), logging is disabled.
func WithLogger(logger *slog.Logger) LoadOption {
	return func(c *loadConfig) {
		c.logger = logger
	}
}
