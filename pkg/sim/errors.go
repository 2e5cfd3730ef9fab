package sim

import "errors"

// Configuration validation errors.
var (
	// ErrInvalidPort is returned when the configured port is out of range.
	ErrInvalidPort = errors.New("sim config: port must be between 0 and 65535")

	// ErrInvalidDelayScale is returned when the delay scale is not positive.
	ErrInvalidDelayScale = errors.New("sim config: delay scale must be greater than zero")
)

// Server errors.
var (
	// ErrServerNotRunning is returned when attempting operations on a stopped server.
	ErrServerNotRunning = errors.New("server is not running")

	// ErrServerAlreadyRunning is returned when attempting to start a running server.
	ErrServerAlreadyRunning = errors.New("server is already running")

	// ErrNilConfig is returned when the server config is nil.
	ErrNilConfig = errors.New("config cannot be nil")
)

// Schema errors.
var (
	// ErrServiceNotFound is returned when the registration service is
	// missing from the compiled schema.
	ErrServiceNotFound = errors.New("registration service not found in schema")

	// ErrMethodNotFound is returned when a requested method is not in the schema.
	ErrMethodNotFound = errors.New("method not found")
)
