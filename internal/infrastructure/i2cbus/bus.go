package i2cbus

// MaxAddress is the highest 7-bit peripheral address.
const MaxAddress uint16 = 0x7f

// Bus is an open session on one I2C bus.
type Bus interface {
	// Select binds subsequent transfers to the peripheral at addr.
	Select(addr uint16) error

	// Write sends p to the selected peripheral in a single transfer.
	Write(p []byte) error

	// Read fills p from the selected peripheral in a single transfer.
	Read(p []byte) error

	// Close releases the bus. It is safe to call more than once.
	Close() error
}

// Opener opens a Bus by device path or bus name.
type Opener interface {
	Open(path string) (Bus, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(path string) (Bus, error)

// Open calls f(path).
func (f OpenerFunc) Open(path string) (Bus, error) {
	return f(path)
}

// checkAddress rejects addresses that do not fit in 7 bits.
func checkAddress(addr uint16) error {
	if addr > MaxAddress {
		return ErrInvalidAddress
	}
	return nil
}
