package monitor

import (
	"errors"
	"fmt"
)

var (
	// ErrTerminated is returned by Run and Cycle once the loop has failed.
	ErrTerminated = errors.New("monitor: loop terminated after failure")

	// ErrInvalidConfig is returned by New for a missing sampler, publisher or interval.
	ErrInvalidConfig = errors.New("monitor: invalid configuration")
)

// CycleError is the terminal outcome of a failed cycle.
type CycleError struct {
	Kind Kind
	Err  error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *CycleError) Unwrap() error {
	return e.Err
}
