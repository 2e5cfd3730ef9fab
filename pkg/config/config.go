// Package config provides process configuration for the regsim binary.
package config

import (
	"fmt"
	"time"

	"github.com/getregsim/regsim/pkg/sim"
)

// DefaultShutdownGrace is how long in-flight streams get to wind down
// on shutdown before the server is forced to stop.
const DefaultShutdownGrace = 10 * time.Second

// LogConfig configures operational logging.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is the output format (text or json).
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Config is the root configuration for the simulator process.
type Config struct {
	// Sim configures the lifecycle simulator server.
	Sim sim.Config `json:"sim" yaml:"sim"`

	// Log configures operational logging.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// ShutdownGrace bounds how long in-flight calls may run after a
	// termination signal. Format: Go duration string (e.g. "10s").
	ShutdownGrace string `json:"shutdownGrace,omitempty" yaml:"shutdownGrace,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Sim: *sim.DefaultConfig(),
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Validate checks the configuration for common errors.
func (c *Config) Validate() error {
	if err := c.Sim.Validate(); err != nil {
		return err
	}
	if _, err := c.ParseShutdownGrace(); err != nil {
		return err
	}
	return nil
}

// ParseShutdownGrace returns the shutdown grace period, falling back to
// DefaultShutdownGrace when unset.
func (c *Config) ParseShutdownGrace() (time.Duration, error) {
	if c.ShutdownGrace == "" {
		return DefaultShutdownGrace, nil
	}
	d, err := time.ParseDuration(c.ShutdownGrace)
	if err != nil {
		return 0, fmt.Errorf("invalid shutdownGrace %q: %w", c.ShutdownGrace, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("shutdownGrace must be positive, got %q", c.ShutdownGrace)
	}
	return d, nil
}
