package mqtt

import (
	"strings"

	"github.com/nerrad567/roomsense/internal/infrastructure/tsdb"
)

// DefaultTopicPrefix is used when no prefix is configured.
const DefaultTopicPrefix = "roomsense"

// Topics builds the roomsense topic hierarchy under a prefix:
//
//	<prefix>/temperature   retained reading, °C
//	<prefix>/humidity      retained reading, %RH
//	<prefix>/status        retained online/offline status (LWT)
type Topics struct {
	prefix string
}

// NewTopics returns a builder for prefix. Surrounding slashes are trimmed.
func NewTopics(prefix string) Topics {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return Topics{prefix: prefix}
}

// Reading returns the topic for one series, e.g. roomsense/temperature.
func (t Topics) Reading(series string) string {
	return t.prefix + "/" + series
}

// Temperature returns the temperature reading topic.
func (t Topics) Temperature() string {
	return t.Reading(tsdb.SeriesTemperature)
}

// Humidity returns the humidity reading topic.
func (t Topics) Humidity() string {
	return t.Reading(tsdb.SeriesHumidity)
}

// Status returns the online/offline status topic.
func (t Topics) Status() string {
	return t.prefix + "/status"
}
