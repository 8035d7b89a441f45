//go:build linux

package i2cbus

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// ioctlI2CSlave is I2C_SLAVE from <linux/i2c-dev.h>.
const ioctlI2CSlave = 0x0703

// DevOpener opens /dev/i2c-N character devices directly.
type DevOpener struct{}

// Open opens the character device at path for reading and writing.
func (DevOpener) Open(path string) (Bus, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &devBus{file: f}, nil
}

// devBus is a Bus backed by an i2c-dev file descriptor.
type devBus struct {
	mu       sync.Mutex
	file     *os.File
	selected bool
	closed   bool
}

func (b *devBus) Select(addr uint16) error {
	if err := checkAddress(addr); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	if err := unix.IoctlSetInt(int(b.file.Fd()), ioctlI2CSlave, int(addr)); err != nil {
		return fmt.Errorf("I2C_SLAVE %#02x: %w", addr, err)
	}
	b.selected = true
	return nil
}

func (b *devBus) Write(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ready(); err != nil {
		return err
	}
	n, err := b.file.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return fmt.Errorf("%w: %d of %d bytes", ErrShortWrite, n, len(p))
	}
	return nil
}

func (b *devBus) Read(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ready(); err != nil {
		return err
	}
	// i2c-dev performs one bus transaction per read(2); never loop.
	n, err := b.file.Read(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return fmt.Errorf("%w: %d of %d bytes", ErrShortRead, n, len(p))
	}
	return nil
}

func (b *devBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	return b.file.Close()
}

// ready reports whether a transfer may proceed. Callers hold b.mu.
func (b *devBus) ready() error {
	if b.closed {
		return ErrClosed
	}
	if !b.selected {
		return ErrNotSelected
	}
	return nil
}
