// Package influxdb mirrors sensor readings into an InfluxDB 2.x bucket.
//
// It wraps the official influxdb-client-go v2 library. The primary sink is
// the line-protocol writer in package tsdb; this package is an optional
// second destination for installations that run InfluxDB 2.x with token
// authentication, organisations and buckets.
//
// # Usage
//
//	client, err := influxdb.Connect(ctx, cfg.InfluxDB)
//	if errors.Is(err, influxdb.ErrDisabled) {
//	    // mirror not configured
//	}
//	defer client.Close()
//
//	err = client.Publish(ctx, 21.5, 45.0, time.Now())
//
// # Error Handling
//
// Writes are blocking, so a rejected write is returned from Publish as
// ErrWriteFailed and the polling loop treats it like any other send
// failure.
package influxdb
