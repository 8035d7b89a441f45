package i2cbus

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var (
	hostOnce    sync.Once
	hostInitErr error
)

// initHost loads the periph.io host drivers once per process.
func initHost() error {
	hostOnce.Do(func() {
		if _, err := host.Init(); err != nil {
			hostInitErr = fmt.Errorf("periph host init: %w", err)
		}
	})
	return hostInitErr
}

// PeriphOpener opens buses through the periph.io registry.
//
// The zero value uses i2creg.Open after initialising the host drivers.
// OpenBus may be set to supply a bus directly, which skips host
// initialisation.
type PeriphOpener struct {
	OpenBus func(name string) (i2c.BusCloser, error)
}

// Open opens the named bus. name may be a device path, alias or number.
func (o PeriphOpener) Open(name string) (Bus, error) {
	openBus := o.OpenBus
	if openBus == nil {
		if err := initHost(); err != nil {
			return nil, err
		}
		openBus = i2creg.Open
	}

	bc, err := openBus(name)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	return &periphBus{bus: bc}, nil
}

// periphBus adapts an i2c.BusCloser to Bus.
type periphBus struct {
	mu     sync.Mutex
	bus    i2c.BusCloser
	dev    *i2c.Dev
	closed bool
}

func (b *periphBus) Select(addr uint16) error {
	if err := checkAddress(addr); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	b.dev = &i2c.Dev{Bus: b.bus, Addr: addr}
	return nil
}

func (b *periphBus) Write(p []byte) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	return dev.Tx(p, nil)
}

func (b *periphBus) Read(p []byte) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	return dev.Tx(nil, p)
}

func (b *periphBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	return b.bus.Close()
}

func (b *periphBus) device() (*i2c.Dev, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}
	if b.dev == nil {
		return nil, ErrNotSelected
	}
	return b.dev, nil
}
