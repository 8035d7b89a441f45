//go:build !linux

package i2cbus

// DevOpener opens /dev/i2c-N character devices directly. It requires Linux.
type DevOpener struct{}

// Open always fails with ErrUnsupported on this platform.
func (DevOpener) Open(string) (Bus, error) {
	return nil, ErrUnsupported
}
