package influxdb

import (
	"context"
	"fmt"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/roomsense/internal/infrastructure/tsdb"
)

// Publish writes one reading as two points in a single request.
//
// Points use the tsdb series names and sensor tag with a single "value"
// field, and share at truncated to whole seconds, so the bucket holds the
// same series as the primary database.
//
// Parameters:
//   - ctx: Context for the write request
//   - temperature: Degrees Celsius
//   - humidity: Percent relative humidity
//   - at: Sample time
//
// Returns:
//   - error: ErrNotConnected after Close, ErrWriteFailed if the server rejects the write
func (c *Client) Publish(ctx context.Context, temperature, humidity float64, at time.Time) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	ts := at.Truncate(time.Second)
	points := []*write.Point{
		newReadingPoint(tsdb.SeriesTemperature, temperature, ts),
		newReadingPoint(tsdb.SeriesHumidity, humidity, ts),
	}

	if err := c.writeAPI.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

func newReadingPoint(measurement string, value float64, ts time.Time) *write.Point {
	return write.NewPoint(
		measurement,
		map[string]string{"sensor": tsdb.SensorTag},
		map[string]interface{}{"value": value},
		ts,
	)
}
