// roomsense - HDC1000 room climate logger
//
// This is the main entry point for roomsense. It samples an HDC1000
// temperature/humidity sensor over I2C once per polling interval and writes
// each reading to an InfluxDB-compatible line-protocol endpoint, optionally
// mirroring it to InfluxDB 2.x and MQTT.
//
// The process exits non-zero on the first failed cycle so that a supervisor
// (systemd, runit) can restart it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nerrad567/roomsense/internal/infrastructure/config"
	"github.com/nerrad567/roomsense/internal/infrastructure/i2cbus"
	"github.com/nerrad567/roomsense/internal/infrastructure/influxdb"
	"github.com/nerrad567/roomsense/internal/infrastructure/logging"
	"github.com/nerrad567/roomsense/internal/infrastructure/mqtt"
	"github.com/nerrad567/roomsense/internal/infrastructure/tsdb"
	"github.com/nerrad567/roomsense/internal/monitor"
	"github.com/nerrad567/roomsense/internal/sensor/hdc1000"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// configEnv names the environment variable holding the config file path.
// When unset, built-in defaults plus ROOMSENSE_* overrides are used.
const configEnv = "ROOMSENSE_CONFIG"

// startupCheckTimeout bounds the endpoint ping before the first cycle.
const startupCheckTimeout = 5 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting roomsense",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := os.Getenv(configEnv)
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)

	sensorCfg := hdc1000.DefaultConfig()
	sensorCfg.BusPath = cfg.Sensor.BusPath
	sensorCfg.Address = cfg.Sensor.Address

	driver := hdc1000.New(sensorCfg, busOpener(cfg.Sensor.BusDriver))
	driver.SetLogger(log.With("component", "hdc1000"))
	log.Info("sensor configured",
		"bus", cfg.Sensor.BusPath,
		"driver", cfg.Sensor.BusDriver,
		"address", fmt.Sprintf("0x%02x", cfg.Sensor.Address),
	)

	tsdbClient, err := tsdb.New(cfg.TSDB)
	if err != nil {
		return fmt.Errorf("creating tsdb client: %w", err)
	}
	checkEndpoint(ctx, tsdbClient, log)

	publishers := monitor.MultiPublisher{tsdbClient}
	var mirrors []mirrorCheck

	if cfg.InfluxDB.Enabled {
		influxClient, connErr := influxdb.Connect(ctx, cfg.InfluxDB)
		if connErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", connErr)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB mirror connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
		publishers = append(publishers, influxClient)
		mirrors = append(mirrors, mirrorCheck{name: "influxdb", checker: influxClient})
	}

	if cfg.MQTT.Enabled {
		mqttClient, connErr := mqtt.Connect(cfg.MQTT)
		if connErr != nil {
			return fmt.Errorf("connecting to MQTT: %w", connErr)
		}
		mqttClient.SetLogger(log.With("component", "mqtt"))
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT mirror connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
		publishers = append(publishers,
			mqtt.NewReadingPublisher(mqttClient, mqttClient.Topics(), byte(cfg.MQTT.QoS), tsdb.SensorTag))
		mirrors = append(mirrors, mirrorCheck{name: "mqtt", checker: mqttClient})
	}

	if err := healthCheck(ctx, mirrors); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	loop, err := monitor.New(monitor.Config{Interval: cfg.Polling.Interval}, driver, publishers)
	if err != nil {
		return fmt.Errorf("creating polling loop: %w", err)
	}
	loop.SetLogger(log.With("component", "monitor"))

	log.Info("polling started",
		"interval", cfg.Polling.Interval,
		"write_url", tsdbClient.WriteURL(),
		"sinks", len(publishers),
	)

	if err := loop.Run(ctx); err != nil {
		return fmt.Errorf("polling: %w", err)
	}

	log.Info("roomsense stopped", "cycles", loop.Cycles())
	return nil
}

// busOpener returns the I2C opener for the configured driver.
// Config validation guarantees driver is one of the known names.
func busOpener(driver string) i2cbus.Opener {
	if driver == config.BusDriverPeriph {
		return i2cbus.PeriphOpener{}
	}
	return i2cbus.DevOpener{}
}

// checkEndpoint pings the write endpoint once. A failure is only logged:
// the first cycle decides whether the endpoint is really unusable.
func checkEndpoint(ctx context.Context, client *tsdb.Client, log *logging.Logger) {
	checkCtx, cancel := context.WithTimeout(ctx, startupCheckTimeout)
	defer cancel()

	if err := client.HealthCheck(checkCtx); err != nil {
		log.Warn("tsdb endpoint not reachable at startup", "error", err)
		return
	}
	log.Info("tsdb endpoint reachable")
}

// healthChecker is implemented by the mirror clients.
type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

type mirrorCheck struct {
	name    string
	checker healthChecker
}

// healthCheck verifies every enabled mirror before the first cycle.
// A failure aborts startup; the primary endpoint only gets checkEndpoint's warning.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - mirrors: Enabled mirrors, in publish order
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, mirrors []mirrorCheck) error {
	checkCtx, cancel := context.WithTimeout(ctx, startupCheckTimeout)
	defer cancel()

	for _, m := range mirrors {
		if err := m.checker.HealthCheck(checkCtx); err != nil {
			return fmt.Errorf("%s: %w", m.name, err)
		}
	}
	return nil
}
