package sim

// DefaultPort is the port the simulator binds when none is configured.
// It is distinct from the declarative mock engine's port so both can
// run side by side in one process.
const DefaultPort = 50105

// Config configures the simulator server.
type Config struct {
	// Port is the TCP port to bind. 0 lets the OS assign one.
	Port int `json:"port" yaml:"port"`

	// Reflection enables gRPC server reflection, allowing clients like
	// grpcurl to discover the simulated services.
	Reflection bool `json:"reflection" yaml:"reflection"`

	// DelayScale uniformly scales every inter-phase delay. 1.0 runs the
	// scripts at nominal speed; test setups use small values to compress
	// wall-clock time without changing event order.
	DelayScale float64 `json:"delayScale,omitempty" yaml:"delayScale,omitempty"`
}

// DefaultConfig returns the simulator defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:       DefaultPort,
		Reflection: true,
		DelayScale: 1.0,
	}
}

// Validate checks the configuration for common errors.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return ErrInvalidPort
	}
	if c.DelayScale <= 0 {
		return ErrInvalidDelayScale
	}
	return nil
}
