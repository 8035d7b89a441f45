// Package tsdb writes sensor readings to an InfluxDB 1.x compatible
// time-series database using line protocol over HTTP.
//
// # Wire format
//
// Each reading produces two records, one per quantity:
//
//	temperature,sensor=hdc1000 value=21.5 1700000000000000000
//	humidity,sensor=hdc1000 value=45.25 1700000000000000000
//
// Both share one timestamp in nanoseconds, truncated to whole seconds.
// Records are encoded with github.com/influxdata/line-protocol.
//
// # Delivery
//
// Every record is a separate POST to http://<endpoint>/write?db=<database>
// with Content-Type text/plain and no authentication. Any 2xx response is
// success. There is no batching or retry; delivery failures are
// returned to the caller as ErrSendFailed.
//
// # Usage
//
//	client, err := tsdb.New(cfg.TSDB)
//	if err != nil {
//	    return err
//	}
//	if err := client.Publish(ctx, 21.5, 45.25, time.Now()); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
package tsdb
