package i2cbustest

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/nerrad567/roomsense/internal/infrastructure/i2cbus"
)

func TestBus_RecordsProtocol(t *testing.T) {
	fake := New(0x01, 0x02)

	bus, err := fake.Open("/dev/i2c-1")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := bus.Select(0x40); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if err := bus.Write([]byte{0x00}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	fake.Wait(13 * time.Millisecond)
	buf := make([]byte, 2)
	if err := bus.Read(buf); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := []Kind{KindOpen, KindSelect, KindWrite, KindWait, KindRead, KindClose}
	if got := fake.Kinds(); !reflect.DeepEqual(got, want) {
		t.Errorf("Kinds() = %v, want %v", got, want)
	}
	if buf[0] != 0x01 || buf[1] != 0x02 {
		t.Errorf("read data = % x, want 01 02", buf)
	}
}

func TestBus_FailAt(t *testing.T) {
	fake := New()
	fake.FailAt(KindWrite, 2, ErrInjected)

	bus, _ := fake.Open("bus")
	_ = bus.Select(0x40)

	if err := bus.Write([]byte{0x01}); err != nil {
		t.Fatalf("first Write() error = %v", err)
	}
	if err := bus.Write([]byte{0x02}); !errors.Is(err, ErrInjected) {
		t.Errorf("second Write() error = %v, want ErrInjected", err)
	}
	if got := fake.Count(KindWrite); got != 2 {
		t.Errorf("Count(write) = %d, want 2", got)
	}
}

func TestBus_ShortRead(t *testing.T) {
	fake := New(0xAA)
	bus, _ := fake.Open("bus")
	_ = bus.Select(0x40)

	if err := bus.Read(make([]byte, 4)); !errors.Is(err, i2cbus.ErrShortRead) {
		t.Errorf("Read() error = %v, want ErrShortRead", err)
	}
}

func TestBus_RequiresSelect(t *testing.T) {
	fake := New()
	bus, _ := fake.Open("bus")

	if err := bus.Write([]byte{0x00}); !errors.Is(err, i2cbus.ErrNotSelected) {
		t.Errorf("Write() error = %v, want ErrNotSelected", err)
	}
}

func TestBus_OpenResetsSession(t *testing.T) {
	fake := New()
	bus, _ := fake.Open("bus")
	_ = bus.Select(0x40)
	_ = bus.Close()

	if !fake.Closed() {
		t.Fatal("Closed() = false after Close")
	}

	bus, _ = fake.Open("bus")
	if fake.Closed() {
		t.Error("Closed() = true after reopening")
	}
	if err := bus.Read(make([]byte, 1)); !errors.Is(err, i2cbus.ErrNotSelected) {
		t.Errorf("Read() on fresh session error = %v, want ErrNotSelected", err)
	}
}
