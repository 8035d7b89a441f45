package tsdb

import (
	"testing"
	"time"
)

func BenchmarkEncode(b *testing.B) {
	ts := time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC).UnixNano()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Encode(SeriesTemperature, 21.5, ts)
	}
}

func BenchmarkEncodeReading(b *testing.B) {
	at := time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = encodeReading(21.5, 45.25, at)
	}
}
