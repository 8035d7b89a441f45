package tsdb

import "errors"

// Sentinel errors for time-series database operations.
//
// These errors can be checked using errors.Is() for specific handling:
//
//	if errors.Is(err, tsdb.ErrSendFailed) {
//	    // the remote database did not accept the line
//	}
var (
	// ErrEncodeFailed indicates a reading could not be encoded as line protocol.
	ErrEncodeFailed = errors.New("tsdb: encode failed")

	// ErrSendFailed indicates a POST failed in transport or was rejected.
	ErrSendFailed = errors.New("tsdb: send failed")

	// ErrHealthCheckFailed indicates the /ping request failed.
	ErrHealthCheckFailed = errors.New("tsdb: health check failed")

	// ErrInvalidConfig indicates the endpoint or database is missing.
	ErrInvalidConfig = errors.New("tsdb: invalid configuration")
)
