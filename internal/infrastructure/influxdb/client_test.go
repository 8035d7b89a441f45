package influxdb_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/roomsense/internal/infrastructure/config"
	"github.com/nerrad567/roomsense/internal/infrastructure/influxdb"
	"github.com/nerrad567/roomsense/internal/infrastructure/tsdb"
)

// fakeServer answers the two endpoints the client uses.
type fakeServer struct {
	*httptest.Server

	mu          sync.Mutex
	writes      []string
	queries     []string
	writeStatus int
	pingStatus  int
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{writeStatus: http.StatusNoContent, pingStatus: http.StatusNoContent}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		defer fs.mu.Unlock()

		switch {
		case strings.HasSuffix(r.URL.Path, "/ping"):
			w.WriteHeader(fs.pingStatus)
		case strings.HasSuffix(r.URL.Path, "/api/v2/write"):
			body, _ := io.ReadAll(r.Body)
			fs.writes = append(fs.writes, string(body))
			fs.queries = append(fs.queries, r.URL.RawQuery)
			if fs.writeStatus >= 300 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(fs.writeStatus)
				_, _ = io.WriteString(w, `{"code":"invalid","message":"bad point"}`)
				return
			}
			w.WriteHeader(fs.writeStatus)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) Writes() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]string(nil), fs.writes...)
}

func testConfig(url string) config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled: true,
		URL:     url,
		Token:   "roomsense-dev-token",
		Org:     "home",
		Bucket:  "climate",
		Timeout: 5 * time.Second,
	}
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Enabled = false

	_, err := influxdb.Connect(context.Background(), cfg)
	if !errors.Is(err, influxdb.ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	fs := newFakeServer(t)
	url := fs.URL
	fs.Close()

	_, err := influxdb.Connect(context.Background(), testConfig(url))
	if !errors.Is(err, influxdb.ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestClient_Publish(t *testing.T) {
	fs := newFakeServer(t)

	client, err := influxdb.Connect(context.Background(), testConfig(fs.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if !client.IsConnected() {
		t.Fatal("IsConnected() = false after Connect()")
	}

	at := time.Unix(1700000000, 500000000)
	if err := client.Publish(context.Background(), 42.5, 25, at); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	writes := fs.Writes()
	if len(writes) != 1 {
		t.Fatalf("got %d write requests, want 1", len(writes))
	}

	var lines []string
	for _, l := range strings.Split(writes[0], "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	want := []string{
		"temperature,sensor=hdc1000 value=42.5 1700000000000000000",
		"humidity,sensor=hdc1000 value=25 1700000000000000000",
	}
	if len(lines) != len(want) {
		t.Fatalf("body lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	fs.mu.Lock()
	query := fs.queries[0]
	fs.mu.Unlock()
	if !strings.Contains(query, "bucket=climate") || !strings.Contains(query, "org=home") {
		t.Errorf("write query = %q, want org and bucket", query)
	}
}

// TestClient_PublishMatchesPrimaryEncoding checks the mirror writes exactly
// the records the primary /write endpoint receives.
func TestClient_PublishMatchesPrimaryEncoding(t *testing.T) {
	fs := newFakeServer(t)

	client, err := influxdb.Connect(context.Background(), testConfig(fs.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	at := time.Unix(1700000060, 250000000)
	if err := client.Publish(context.Background(), 19.75, 48.5, at); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	ts := at.Truncate(time.Second).UnixNano()
	wantTemp, err := tsdb.Encode(tsdb.SeriesTemperature, 19.75, ts)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	wantHum, err := tsdb.Encode(tsdb.SeriesHumidity, 48.5, ts)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	writes := fs.Writes()
	if len(writes) != 1 {
		t.Fatalf("got %d write requests, want 1", len(writes))
	}
	got := strings.Fields(writes[0])
	want := strings.Fields(string(wantTemp) + " " + string(wantHum))
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("mirror body = %q, want %q", writes[0], want)
	}
}

func TestClient_PublishRejected(t *testing.T) {
	fs := newFakeServer(t)

	client, err := influxdb.Connect(context.Background(), testConfig(fs.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	fs.mu.Lock()
	fs.writeStatus = http.StatusBadRequest
	fs.mu.Unlock()

	err = client.Publish(context.Background(), 21.5, 45, time.Now())
	if !errors.Is(err, influxdb.ErrWriteFailed) {
		t.Errorf("Publish() error = %v, want ErrWriteFailed", err)
	}
}

func TestClient_CloseThenPublish(t *testing.T) {
	fs := newFakeServer(t)

	client, err := influxdb.Connect(context.Background(), testConfig(fs.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if err := client.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true after Close()")
	}

	if err := client.Publish(context.Background(), 21.5, 45, time.Now()); !errors.Is(err, influxdb.ErrNotConnected) {
		t.Errorf("Publish() after Close error = %v, want ErrNotConnected", err)
	}
	if err := client.HealthCheck(context.Background()); !errors.Is(err, influxdb.ErrNotConnected) {
		t.Errorf("HealthCheck() after Close error = %v, want ErrNotConnected", err)
	}
}

func TestClient_HealthCheck(t *testing.T) {
	fs := newFakeServer(t)

	client, err := influxdb.Connect(context.Background(), testConfig(fs.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}
