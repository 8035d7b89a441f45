package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Bus driver names accepted by sensor.bus_driver.
const (
	BusDriverIoctl  = "ioctl"
	BusDriverPeriph = "periph"
)

// Config is the root configuration structure for roomsense.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Sensor   SensorConfig   `yaml:"sensor"`
	TSDB     TSDBConfig     `yaml:"tsdb"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	Polling  PollingConfig  `yaml:"polling"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SensorConfig locates the HDC1000 on the host's I2C bus.
type SensorConfig struct {
	BusPath   string `yaml:"bus_path"`
	BusDriver string `yaml:"bus_driver"`
	Address   uint16 `yaml:"address"`
}

// TSDBConfig contains the line-protocol write endpoint settings.
type TSDBConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Database string        `yaml:"database"`
	Timeout  time.Duration `yaml:"timeout"`
}

// InfluxDBConfig contains the optional InfluxDB 2.x mirror settings.
type InfluxDBConfig struct {
	Enabled bool          `yaml:"enabled"`
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Org     string        `yaml:"org"`
	Bucket  string        `yaml:"bucket"`
	Timeout time.Duration `yaml:"timeout"`
}

// MQTTConfig contains the optional MQTT mirror settings.
type MQTTConfig struct {
	Enabled     bool             `yaml:"enabled"`
	Broker      MQTTBrokerConfig `yaml:"broker"`
	Auth        MQTTAuthConfig   `yaml:"auth"`
	QoS         int              `yaml:"qos"`
	TopicPrefix string           `yaml:"topic_prefix"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// PollingConfig controls the sampling cadence.
type PollingConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment overrides.
//
// An empty path skips the file entirely: the defaults, which match a stock
// single-sensor install, are used with environment overrides applied on top.
//
// Environment variables follow the pattern ROOMSENSE_{SECTION}_{KEY}.
// For example: ROOMSENSE_SENSOR_BUS_PATH, ROOMSENSE_LOGGING_LEVEL
//
// Parameters:
//   - path: Path to the YAML configuration file, or "" for defaults only
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Sensor: SensorConfig{
			BusPath:   "/dev/i2c-1",
			BusDriver: BusDriverIoctl,
			Address:   0x40,
		},
		TSDB: TSDBConfig{
			Endpoint: "localhost:8086",
			Database: "myroom",
		},
		InfluxDB: InfluxDBConfig{
			Enabled: false,
			URL:     "http://localhost:8086",
			Timeout: 10 * time.Second,
		},
		MQTT: MQTTConfig{
			Enabled: false,
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "roomsense",
			},
			QoS:         1,
			TopicPrefix: "roomsense",
		},
		Polling: PollingConfig{
			Interval: 60 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Sensor overrides
	if v := os.Getenv("ROOMSENSE_SENSOR_BUS_PATH"); v != "" {
		cfg.Sensor.BusPath = v
	}

	// TSDB overrides
	if v := os.Getenv("ROOMSENSE_TSDB_ENDPOINT"); v != "" {
		cfg.TSDB.Endpoint = v
	}
	if v := os.Getenv("ROOMSENSE_TSDB_DATABASE"); v != "" {
		cfg.TSDB.Database = v
	}

	// InfluxDB overrides
	if v := os.Getenv("ROOMSENSE_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// MQTT overrides
	if v := os.Getenv("ROOMSENSE_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("ROOMSENSE_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("ROOMSENSE_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// Logging overrides
	if v := os.Getenv("ROOMSENSE_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks that required configuration values are present and valid.
func (c *Config) Validate() error {
	var errs []string

	if c.Sensor.BusPath == "" {
		errs = append(errs, "sensor.bus_path is required")
	}

	switch c.Sensor.BusDriver {
	case BusDriverIoctl, BusDriverPeriph:
	default:
		errs = append(errs, fmt.Sprintf("sensor.bus_driver must be %q or %q", BusDriverIoctl, BusDriverPeriph))
	}

	// 0x00-0x02 and 0x78-0x7f are reserved I2C addresses
	if c.Sensor.Address < 0x03 || c.Sensor.Address > 0x77 {
		errs = append(errs, "sensor.address must be between 0x03 and 0x77")
	}

	if c.TSDB.Endpoint == "" {
		errs = append(errs, "tsdb.endpoint is required")
	}
	if c.TSDB.Database == "" {
		errs = append(errs, "tsdb.database is required")
	}
	if c.TSDB.Timeout < 0 {
		errs = append(errs, "tsdb.timeout must not be negative")
	}

	if c.Polling.Interval <= 0 {
		errs = append(errs, "polling.interval must be positive")
	}

	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Bucket == "" {
			errs = append(errs, "influxdb.bucket is required when influxdb is enabled")
		}
		if c.InfluxDB.Timeout < time.Second {
			errs = append(errs, "influxdb.timeout must be at least 1s")
		}
	}

	if c.MQTT.Enabled {
		if c.MQTT.Broker.Host == "" {
			errs = append(errs, "mqtt.broker.host is required when mqtt is enabled")
		}
		if c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535 {
			errs = append(errs, "mqtt.broker.port must be between 1 and 65535")
		}
		if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
			errs = append(errs, "mqtt.qos must be 0, 1, or 2")
		}
		if c.MQTT.TopicPrefix == "" {
			errs = append(errs, "mqtt.topic_prefix is required when mqtt is enabled")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
