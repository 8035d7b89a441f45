package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nerrad567/roomsense/internal/sensor/hdc1000"
)

// DefaultInterval is the pause between the end of one cycle and the next.
const DefaultInterval = 60 * time.Second

// logTimeLayout is the local-time format of per-sample debug lines.
const logTimeLayout = "2006-01-02 15:04:05"

// Sampler takes one reading from the sensor.
type Sampler interface {
	Sample() (hdc1000.Reading, error)
}

// Publisher delivers one reading.
type Publisher interface {
	Publish(ctx context.Context, temperature, humidity float64, at time.Time) error
}

// Logger defines the logging interface for the loop.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Config holds loop timing and hooks.
type Config struct {
	// Interval is the sleep between cycles. Must be positive.
	Interval time.Duration

	// Now returns the sample time. Defaults to time.Now.
	Now func() time.Time

	// Wait blocks for d or until ctx is done. Defaults to a timer wait.
	Wait func(ctx context.Context, d time.Duration) error

	// OnTransition is called after every state change, if set.
	OnTransition func(from, to State)
}

// Loop drives the Sampling → Publishing → Sleeping cycle.
type Loop struct {
	config    Config
	sampler   Sampler
	publisher Publisher
	logger    Logger

	mu      sync.RWMutex
	state   State
	cycles  int
	lastErr error
}

// New creates a Loop in the Idle state.
//
// Parameters:
//   - cfg: Interval and optional hooks; zero Now/Wait use the real clock
//   - sampler: Source of readings, usually *hdc1000.Driver
//   - publisher: Destination of readings, usually *tsdb.Client or a MultiPublisher
//
// Returns:
//   - *Loop: Ready to Run
//   - error: ErrInvalidConfig if a dependency is missing or the interval is not positive
func New(cfg Config, sampler Sampler, publisher Publisher) (*Loop, error) {
	if sampler == nil || publisher == nil {
		return nil, fmt.Errorf("%w: sampler and publisher are required", ErrInvalidConfig)
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive, got %v", ErrInvalidConfig, cfg.Interval)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Wait == nil {
		cfg.Wait = sleepContext
	}

	return &Loop{
		config:    cfg,
		sampler:   sampler,
		publisher: publisher,
		logger:    noopLogger{},
		state:     StateIdle,
	}, nil
}

// SetLogger sets the logger for the loop.
func (l *Loop) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	l.logger = logger
}

// Run cycles until a cycle fails or ctx is cancelled while sleeping.
//
// Returns:
//   - nil: ctx was cancelled between cycles
//   - *CycleError: a cycle failed; the loop is now Failed
//   - ErrTerminated: the loop had already failed
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := l.Cycle(ctx); err != nil {
			return err
		}

		l.setState(StateSleeping)
		if err := l.config.Wait(ctx, l.config.Interval); err != nil {
			l.logger.Info("polling stopped", "cycles", l.Cycles(), "reason", err)
			l.setState(StateIdle)
			return nil
		}
	}
}

// Cycle performs one Sampling → Publishing pass.
//
// Publishing runs under a context that is not cancelled with ctx, so a
// reading that has been taken is always offered to the publisher.
func (l *Loop) Cycle(ctx context.Context) error {
	if l.State() == StateFailed {
		return ErrTerminated
	}

	l.setState(StateSampling)
	reading, err := l.sampler.Sample()
	if err != nil {
		return l.fail(classifySample(err), err)
	}

	at := l.config.Now()
	l.logger.Debug("sampled",
		"time", at.Local().Format(logTimeLayout),
		"temperature", reading.Temperature,
		"humidity", reading.Humidity,
	)

	l.setState(StatePublishing)
	if err := l.publisher.Publish(context.WithoutCancel(ctx), reading.Temperature, reading.Humidity, at); err != nil {
		return l.fail(KindSendFailure, err)
	}

	l.mu.Lock()
	l.cycles++
	l.mu.Unlock()
	return nil
}

// State returns the current state.
func (l *Loop) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Cycles returns the number of completed cycles.
func (l *Loop) Cycles() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cycles
}

// LastError returns the error that failed the loop, or nil.
func (l *Loop) LastError() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}

// fail records a terminal failure and returns it as a *CycleError.
func (l *Loop) fail(kind Kind, err error) error {
	cerr := &CycleError{Kind: kind, Err: err}

	l.mu.Lock()
	l.lastErr = cerr
	l.mu.Unlock()

	l.setState(StateFailed)
	l.logger.Error("cycle failed", "kind", string(kind), "error", err)
	return cerr
}

func (l *Loop) setState(to State) {
	l.mu.Lock()
	from := l.state
	l.state = to
	l.mu.Unlock()

	if l.config.OnTransition != nil && from != to {
		l.config.OnTransition(from, to)
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
