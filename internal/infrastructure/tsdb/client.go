package tsdb

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nerrad567/roomsense/internal/infrastructure/config"
)

// Client posts line-protocol records to an InfluxDB 1.x compatible
// /write endpoint, one record per request.
//
// Records are neither batched nor retried: a record that fails to send
// is reported to the caller and dropped.
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	baseURL    string
	writeURL   string
	httpClient *http.Client
}

// New creates a Client for cfg. No network I/O is performed.
//
// Parameters:
//   - cfg: TSDB configuration; Endpoint is host:port without scheme
//
// Returns:
//   - *Client: Ready to write
//   - error: ErrInvalidConfig if the endpoint or database is empty
func New(cfg config.TSDBConfig) (*Client, error) {
	if cfg.Endpoint == "" || cfg.Database == "" {
		return nil, fmt.Errorf("%w: endpoint and database are required", ErrInvalidConfig)
	}

	base := "http://" + cfg.Endpoint
	return &Client{
		baseURL:  base,
		writeURL: base + "/write?db=" + url.QueryEscape(cfg.Database),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

// WriteURL returns the URL records are posted to.
func (c *Client) WriteURL() string {
	return c.writeURL
}

// Publish sends one sample as two records, temperature then humidity.
//
// Both records carry the same timestamp: at truncated to whole seconds.
// The humidity record is not sent if the temperature record fails. A
// temperature record that was accepted is not rolled back when the
// humidity record then fails; the call still returns an error.
//
// Parameters:
//   - ctx: Context for the HTTP requests
//   - temperature: Degrees Celsius
//   - humidity: Percent relative humidity
//   - at: Sample time
//
// Returns:
//   - error: ErrEncodeFailed or ErrSendFailed
func (c *Client) Publish(ctx context.Context, temperature, humidity float64, at time.Time) error {
	lines, err := encodeReading(temperature, humidity, at)
	if err != nil {
		return err
	}

	for _, line := range lines {
		if err := c.Write(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

// Write posts a single record.
//
// Any transport error and any non-2xx response is ErrSendFailed.
func (c *Client) Write(ctx context.Context, line MetricLine) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.writeURL, bytes.NewBufferString(string(line)))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	// InfluxDB explains a rejected write in a short JSON body.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: HTTP %d: %s", ErrSendFailed, resp.StatusCode, bytes.TrimSpace(body))
	}
	return nil
}

// HealthCheck checks the database with GET /ping.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if healthy, ErrHealthCheckFailed otherwise
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHealthCheckFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHealthCheckFailed, err)
	}
	defer resp.Body.Close()
	// Drain body to allow connection reuse
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrHealthCheckFailed, resp.StatusCode)
	}
	return nil
}
