// Package config provides centralized configuration for Hopstack runtime
// values.
package config

import (
	"os"
	"strconv"
	"time"
)

// RuntimeConfig holds runtime configuration values.
type RuntimeConfig struct {
	// History configuration
	History HistoryConfig

	// Device configuration
	Device DeviceConfig
}

// HistoryConfig holds undo-history configuration.
type HistoryConfig struct {
	// MaxDepth bounds the past stack; the oldest actions are dropped past
	// this bound. 0 means unbounded.
	// Default: 200
	MaxDepth int

	// Journal enables persisting action metadata across sessions.
	// Default: true
	Journal bool
}

// DeviceConfig holds managed-device configuration. An empty URL means
// offline mode: edits are local-only.
type DeviceConfig struct {
	// URL is the device REST endpoint.
	URL string

	// Token authenticates against the device API.
	Token string

	// Timeout is the per-request timeout.
	// Default: 30s
	Timeout time.Duration

	// RetryDelays are the delays before each retry attempt.
	// Default: [5s, 30s]
	RetryDelays []time.Duration
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		History: HistoryConfig{
			MaxDepth: 200,
			Journal:  true,
		},
		Device: DeviceConfig{
			Timeout: 30 * time.Second,
			RetryDelays: []time.Duration{
				5 * time.Second,
				30 * time.Second,
			},
		},
	}
}

// Global holds the global runtime configuration instance.
// It is initialized with defaults and can be overridden via environment
// variables.
var Global = initGlobal()

func initGlobal() *RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()
	return cfg
}

// loadFromEnv loads configuration overrides from environment variables.
func (c *RuntimeConfig) loadFromEnv() {
	if v := os.Getenv("HOPSTACK_HISTORY_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.History.MaxDepth = n
		}
	}
	if v := os.Getenv("HOPSTACK_HISTORY_JOURNAL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.History.Journal = b
		}
	}
	if v := os.Getenv("HOPSTACK_DEVICE_URL"); v != "" {
		c.Device.URL = v
	}
	if v := os.Getenv("HOPSTACK_DEVICE_TOKEN"); v != "" {
		c.Device.Token = v
	}
	if v := os.Getenv("HOPSTACK_DEVICE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Device.Timeout = d
		}
	}
}

// ReloadFromEnv reloads configuration from environment variables.
// This is useful for testing or when environment variables change.
func (c *RuntimeConfig) ReloadFromEnv() {
	c.loadFromEnv()
}

// Reset resets the configuration to defaults.
// This is primarily useful for testing.
func (c *RuntimeConfig) Reset() {
	defaults := DefaultRuntimeConfig()
	*c = *defaults
}
