// Package i2cbustest provides a scripted in-memory i2cbus.Bus for tests.
//
// The fake records every operation in order, including conversion waits
// reported through Wait, so tests can assert the exact bus protocol a
// driver performs without hardware.
package i2cbustest

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nerrad567/roomsense/internal/infrastructure/i2cbus"
)

// Kind identifies a recorded operation.
type Kind string

// Recorded operation kinds.
const (
	KindOpen   Kind = "open"
	KindSelect Kind = "select"
	KindWrite  Kind = "write"
	KindRead   Kind = "read"
	KindWait   Kind = "wait"
	KindClose  Kind = "close"
)

// Op is one recorded operation.
type Op struct {
	Kind Kind
	Path string        // open
	Addr uint16        // select
	Data []byte        // write: bytes sent; read: bytes returned
	Len  int           // read: bytes requested
	Wait time.Duration // wait
	Err  error         // injected failure, if any
}

func (o Op) String() string {
	switch o.Kind {
	case KindOpen:
		return fmt.Sprintf("open(%s)", o.Path)
	case KindSelect:
		return fmt.Sprintf("select(%#02x)", o.Addr)
	case KindWrite:
		return fmt.Sprintf("write(% x)", o.Data)
	case KindRead:
		return fmt.Sprintf("read(%d)", o.Len)
	case KindWait:
		return fmt.Sprintf("wait(%v)", o.Wait)
	default:
		return string(o.Kind)
	}
}

type failKey struct {
	kind Kind
	n    int
}

// Bus is a fake i2cbus.Bus that doubles as an i2cbus.Opener.
//
// The same Bus is returned by every Open; each Open resets the selection
// and closed state, while the operation log accumulates across sessions.
type Bus struct {
	// ReadData is copied into every Read. Shorter data yields ErrShortRead.
	ReadData []byte

	mu       sync.Mutex
	ops      []Op
	counts   map[Kind]int
	failures map[failKey]error
	selected bool
	closed   bool
}

// New returns a fake bus whose reads return data.
func New(data ...byte) *Bus {
	return &Bus{ReadData: data}
}

// FailAt makes the n-th (1-based) operation of kind fail with err.
// An n of 0 fails every operation of that kind.
func (b *Bus) FailAt(kind Kind, n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failures == nil {
		b.failures = make(map[failKey]error)
	}
	b.failures[failKey{kind: kind, n: n}] = err
}

// Ops returns a copy of the recorded operation log.
func (b *Bus) Ops() []Op {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]Op(nil), b.ops...)
}

// Count returns how many operations of kind were attempted.
func (b *Bus) Count(kind Kind) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.counts[kind]
}

// Closed reports whether the current session has been closed.
func (b *Bus) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.closed
}

// Open implements i2cbus.Opener.
func (b *Bus) Open(path string) (i2cbus.Bus, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.record(Op{Kind: KindOpen, Path: path}); err != nil {
		return nil, err
	}
	b.selected = false
	b.closed = false
	return b, nil
}

// Select implements i2cbus.Bus.
func (b *Bus) Select(addr uint16) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return i2cbus.ErrClosed
	}
	if err := b.record(Op{Kind: KindSelect, Addr: addr}); err != nil {
		return err
	}
	if addr > i2cbus.MaxAddress {
		return i2cbus.ErrInvalidAddress
	}
	b.selected = true
	return nil
}

// Write implements i2cbus.Bus.
func (b *Bus) Write(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ready(); err != nil {
		return err
	}
	return b.record(Op{Kind: KindWrite, Data: append([]byte(nil), p...)})
}

// Read implements i2cbus.Bus.
func (b *Bus) Read(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ready(); err != nil {
		return err
	}
	n := copy(p, b.ReadData)
	if err := b.record(Op{Kind: KindRead, Len: len(p), Data: append([]byte(nil), p[:n]...)}); err != nil {
		return err
	}
	if n < len(p) {
		return fmt.Errorf("%w: %d of %d bytes", i2cbus.ErrShortRead, n, len(p))
	}
	return nil
}

// Close implements i2cbus.Bus.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	return b.record(Op{Kind: KindClose})
}

// Wait records a blocking wait without sleeping. It has the signature of
// time.Sleep so it can be injected as a driver's sleep function.
func (b *Bus) Wait(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	_ = b.record(Op{Kind: KindWait, Wait: d})
}

// Kinds returns the kinds of the recorded operations in order.
func (b *Bus) Kinds() []Kind {
	ops := b.Ops()
	kinds := make([]Kind, len(ops))
	for i, op := range ops {
		kinds[i] = op.Kind
	}
	return kinds
}

// ErrInjected is a convenience failure for FailAt.
var ErrInjected = errors.New("i2cbustest: injected failure")

// record appends op, applying any injected failure. Callers hold b.mu.
func (b *Bus) record(op Op) error {
	if b.counts == nil {
		b.counts = make(map[Kind]int)
	}
	b.counts[op.Kind]++

	err := b.failures[failKey{kind: op.Kind, n: b.counts[op.Kind]}]
	if err == nil {
		err = b.failures[failKey{kind: op.Kind, n: 0}]
	}
	op.Err = err
	b.ops = append(b.ops, op)
	return err
}

// ready reports whether a transfer may proceed. Callers hold b.mu.
func (b *Bus) ready() error {
	if b.closed {
		return i2cbus.ErrClosed
	}
	if !b.selected {
		return i2cbus.ErrNotSelected
	}
	return nil
}
