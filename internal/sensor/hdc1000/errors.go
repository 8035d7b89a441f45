package hdc1000

import "errors"

// Sample step failures. Each wraps the underlying bus error.
var (
	// ErrOpenDevice is returned when the bus device cannot be opened.
	ErrOpenDevice = errors.New("hdc1000: open device")

	// ErrDeviceSelect is returned when the sensor address cannot be selected.
	ErrDeviceSelect = errors.New("hdc1000: select device")

	// ErrSetup is returned when the configuration register write fails.
	ErrSetup = errors.New("hdc1000: write configuration")

	// ErrRequestConversion is returned when the conversion trigger write fails.
	ErrRequestConversion = errors.New("hdc1000: request conversion")

	// ErrReadResult is returned when the 4-byte result cannot be read.
	ErrReadResult = errors.New("hdc1000: read result")
)
