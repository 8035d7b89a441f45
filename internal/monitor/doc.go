// Package monitor runs the sample-and-publish cycle.
//
// A Loop owns one Sampler and one Publisher and drives them through a
// small state machine:
//
//	Idle ─▶ Sampling ─▶ Publishing ─▶ Sleeping ─┐
//	            ▲                               │
//	            └───────────────────────────────┘
//	Sampling/Publishing ──(error)──▶ Failed (terminal)
//
// There is no retry: the first failed cycle moves the loop to Failed and
// Run returns a *CycleError naming the failing step. The process is
// expected to exit non-zero and be restarted by its supervisor.
//
// # Cancellation
//
// The context passed to Run is honoured only while Sleeping. A cycle that
// has started runs to completion, so a shutdown never leaves a reading
// half-published.
//
// # Usage
//
//	loop, err := monitor.New(monitor.Config{Interval: time.Minute}, driver, publisher)
//	if err != nil {
//	    return err
//	}
//	loop.SetLogger(logger)
//	return loop.Run(ctx)
package monitor
