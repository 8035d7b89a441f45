package i2cbus

import "errors"

// Domain-specific errors for I2C bus operations.
var (
	// ErrNotSelected is returned when a transfer is attempted before Select.
	ErrNotSelected = errors.New("i2cbus: no peripheral address selected")

	// ErrInvalidAddress is returned for addresses outside the 7-bit range.
	ErrInvalidAddress = errors.New("i2cbus: address outside 7-bit range")

	// ErrShortWrite is returned when the kernel accepts fewer bytes than given.
	ErrShortWrite = errors.New("i2cbus: short write")

	// ErrShortRead is returned when fewer bytes than requested are read.
	ErrShortRead = errors.New("i2cbus: short read")

	// ErrClosed is returned for any operation on a closed bus.
	ErrClosed = errors.New("i2cbus: bus closed")

	// ErrUnsupported is returned by openers that cannot run on this platform.
	ErrUnsupported = errors.New("i2cbus: not supported on this platform")
)
