package i2cbus

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// txBus is an i2c.BusCloser that records transactions.
type txBus struct {
	txs    []tx
	read   []byte
	txErr  error
	closed int
}

type tx struct {
	addr uint16
	w    []byte
	rLen int
}

func (b *txBus) String() string                  { return "txBus" }
func (b *txBus) SetSpeed(physic.Frequency) error { return nil }
func (b *txBus) Close() error                    { b.closed++; return nil }

func (b *txBus) Tx(addr uint16, w, r []byte) error {
	b.txs = append(b.txs, tx{addr: addr, w: append([]byte(nil), w...), rLen: len(r)})
	if b.txErr != nil {
		return b.txErr
	}
	copy(r, b.read)
	return nil
}

func openTxBus(t *testing.T, fake *txBus) Bus {
	t.Helper()
	opener := PeriphOpener{OpenBus: func(string) (i2c.BusCloser, error) { return fake, nil }}
	bus, err := opener.Open("1")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return bus
}

func TestPeriphBus_TransfersUseSelectedAddress(t *testing.T) {
	fake := &txBus{read: []byte{0x80, 0x00, 0x40, 0x00}}
	bus := openTxBus(t, fake)

	if err := bus.Select(0x40); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if err := bus.Write([]byte{0x02, 0x10, 0x00}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	buf := make([]byte, 4)
	if err := bus.Read(buf); err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if len(fake.txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(fake.txs))
	}
	if fake.txs[0].addr != 0x40 || len(fake.txs[0].w) != 3 || fake.txs[0].rLen != 0 {
		t.Errorf("write tx = %+v, want 3-byte write to 0x40", fake.txs[0])
	}
	if fake.txs[1].addr != 0x40 || len(fake.txs[1].w) != 0 || fake.txs[1].rLen != 4 {
		t.Errorf("read tx = %+v, want 4-byte read from 0x40", fake.txs[1])
	}
	if buf[0] != 0x80 || buf[2] != 0x40 {
		t.Errorf("read data = % x, want 80 00 40 00", buf)
	}
}

func TestPeriphBus_RequiresSelect(t *testing.T) {
	bus := openTxBus(t, &txBus{})

	if err := bus.Write([]byte{0x00}); !errors.Is(err, ErrNotSelected) {
		t.Errorf("Write() before Select error = %v, want ErrNotSelected", err)
	}
	if err := bus.Read(make([]byte, 1)); !errors.Is(err, ErrNotSelected) {
		t.Errorf("Read() before Select error = %v, want ErrNotSelected", err)
	}
}

func TestPeriphBus_InvalidAddress(t *testing.T) {
	bus := openTxBus(t, &txBus{})

	if err := bus.Select(0x80); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("Select(0x80) error = %v, want ErrInvalidAddress", err)
	}
}

func TestPeriphBus_CloseIsIdempotent(t *testing.T) {
	fake := &txBus{}
	bus := openTxBus(t, fake)

	if err := bus.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if fake.closed != 1 {
		t.Errorf("underlying Close called %d times, want 1", fake.closed)
	}
	if err := bus.Select(0x40); !errors.Is(err, ErrClosed) {
		t.Errorf("Select() after Close error = %v, want ErrClosed", err)
	}
}

func TestPeriphOpener_OpenError(t *testing.T) {
	sentinel := errors.New("no such bus")
	opener := PeriphOpener{OpenBus: func(string) (i2c.BusCloser, error) { return nil, sentinel }}

	if _, err := opener.Open("9"); !errors.Is(err, sentinel) {
		t.Errorf("Open() error = %v, want wrapped %v", err, sentinel)
	}
}

func TestPeriphBus_TxError(t *testing.T) {
	sentinel := errors.New("nack")
	bus := openTxBus(t, &txBus{txErr: sentinel})
	if err := bus.Select(0x40); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	if err := bus.Write([]byte{0x00}); !errors.Is(err, sentinel) {
		t.Errorf("Write() error = %v, want %v", err, sentinel)
	}
}

func TestOpenerFunc(t *testing.T) {
	var got string
	opener := OpenerFunc(func(path string) (Bus, error) {
		got = path
		return nil, ErrUnsupported
	})

	if _, err := opener.Open("/dev/i2c-4"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Open() error = %v, want ErrUnsupported", err)
	}
	if got != "/dev/i2c-4" {
		t.Errorf("path = %q, want /dev/i2c-4", got)
	}
}
