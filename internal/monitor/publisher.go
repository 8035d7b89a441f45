package monitor

import (
	"context"
	"time"
)

// MultiPublisher publishes to each Publisher in order and stops at the
// first error. Earlier publishers are not rolled back.
type MultiPublisher []Publisher

// Publish implements Publisher.
func (m MultiPublisher) Publish(ctx context.Context, temperature, humidity float64, at time.Time) error {
	for _, p := range m {
		if err := p.Publish(ctx, temperature, humidity, at); err != nil {
			return err
		}
	}
	return nil
}
