package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ReadingMessage is the retained JSON payload published per series.
type ReadingMessage struct {
	Sensor    string    `json:"sensor"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher is the subset of Client used by ReadingPublisher.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// ReadingPublisher mirrors readings onto MQTT, one retained message per
// series.
type ReadingPublisher struct {
	pub    Publisher
	topics Topics
	qos    byte
	sensor string
}

// NewReadingPublisher creates a ReadingPublisher.
//
// Parameters:
//   - pub: Usually a connected *Client
//   - topics: Topic builder for the configured prefix
//   - qos: QoS for reading messages
//   - sensor: Value of the "sensor" field, e.g. "hdc1000"
func NewReadingPublisher(pub Publisher, topics Topics, qos byte, sensor string) *ReadingPublisher {
	return &ReadingPublisher{pub: pub, topics: topics, qos: qos, sensor: sensor}
}

// Publish sends the temperature then the humidity message. The humidity
// message is not sent if the temperature message fails.
func (p *ReadingPublisher) Publish(_ context.Context, temperature, humidity float64, at time.Time) error {
	ts := at.Truncate(time.Second).UTC()

	msgs := []struct {
		topic string
		msg   ReadingMessage
	}{
		{p.topics.Temperature(), ReadingMessage{Sensor: p.sensor, Value: temperature, Unit: "C", Timestamp: ts}},
		{p.topics.Humidity(), ReadingMessage{Sensor: p.sensor, Value: humidity, Unit: "%RH", Timestamp: ts}},
	}

	for _, m := range msgs {
		payload, err := json.Marshal(m.msg)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPublishFailed, err)
		}
		if err := p.pub.Publish(m.topic, payload, p.qos, true); err != nil {
			return err
		}
	}
	return nil
}
