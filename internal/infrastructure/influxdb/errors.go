package influxdb

import "errors"

// Domain-specific errors for InfluxDB operations.
var (
	// ErrNotConnected is returned when an operation requires a connection.
	ErrNotConnected = errors.New("influxdb: not connected")

	// ErrConnectionFailed is returned when the initial ping fails.
	ErrConnectionFailed = errors.New("influxdb: connection failed")

	// ErrWriteFailed is returned when the server rejects a write.
	ErrWriteFailed = errors.New("influxdb: write failed")

	// ErrDisabled is returned when the mirror is disabled in configuration.
	ErrDisabled = errors.New("influxdb: disabled in configuration")
)
