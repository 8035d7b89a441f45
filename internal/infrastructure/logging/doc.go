// Package logging provides structured logging for roomsense.
//
// This package wraps Go's standard log/slog package so that every
// component logs with the same handler, level and default fields.
//
// # Features
//
//   - JSON output for unattended hosts (machine-parsable)
//   - Text output for a terminal session (human-readable)
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//
// # Configuration
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// Per-sample readings are logged at debug level, so a production host at
// info level only reports startup, shutdown and the terminating failure.
//
// # Usage
//
//	logger := logging.New(cfg.Logging, version)
//	logger.Info("starting roomsense", "interval", cfg.Polling.Interval)
//	logger.Error("cycle failed", "error", err)
package logging
