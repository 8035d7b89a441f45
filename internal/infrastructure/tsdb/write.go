package tsdb

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	protocol "github.com/influxdata/line-protocol"
)

// Series names and the sensor tag written with every line.
const (
	SeriesTemperature = "temperature"
	SeriesHumidity    = "humidity"

	// SensorTag is the value of the "sensor" tag on every line.
	SensorTag = "hdc1000"

	sensorTagKey = "sensor"
	valueField   = "value"
)

// MetricLine is one line-protocol record without a trailing newline.
type MetricLine string

// Encode formats one reading as a line-protocol record.
//
// The result has the form:
//
//	<series>,sensor=hdc1000 value=<value> <timestampNanos>
//
// Values use the shortest decimal representation that round-trips
// (21.5, not 2.15e+01). NaN and ±Inf cannot be represented and are
// rejected with ErrEncodeFailed.
//
// Parameters:
//   - series: Measurement name, SeriesTemperature or SeriesHumidity
//   - value: The reading in physical units
//   - timestampNanos: Nanoseconds since the Unix epoch
//
// Returns:
//   - MetricLine: The encoded record
//   - error: ErrEncodeFailed if the value or series cannot be encoded
func Encode(series string, value float64, timestampNanos int64) (MetricLine, error) {
	m, err := protocol.New(
		series,
		map[string]string{sensorTagKey: SensorTag},
		map[string]interface{}{valueField: value},
		time.Unix(0, timestampNanos),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}

	var buf bytes.Buffer
	enc := protocol.NewEncoder(&buf)
	enc.FailOnFieldErr(true)
	if _, err := enc.Encode(m); err != nil {
		return "", fmt.Errorf("%w: %s=%v: %w", ErrEncodeFailed, series, value, err)
	}

	return MetricLine(strings.TrimSuffix(buf.String(), "\n")), nil
}

// encodeReading returns the temperature and humidity lines for one sample.
func encodeReading(temperature, humidity float64, at time.Time) ([]MetricLine, error) {
	ts := at.Truncate(time.Second).UnixNano()

	temp, err := Encode(SeriesTemperature, temperature, ts)
	if err != nil {
		return nil, err
	}
	hum, err := Encode(SeriesHumidity, humidity, ts)
	if err != nil {
		return nil, err
	}
	return []MetricLine{temp, hum}, nil
}
