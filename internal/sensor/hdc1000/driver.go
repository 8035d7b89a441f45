package hdc1000

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/nerrad567/roomsense/internal/infrastructure/i2cbus"
)

// Register map and configuration constants.
const (
	// DefaultAddress is the sensor's address with ADR0 and ADR1 tied low.
	DefaultAddress uint16 = 0x40

	RegTemperature byte = 0x00
	RegHumidity    byte = 0x01
	RegConfig      byte = 0x02

	// ConfigModeSequential acquires temperature and humidity in one conversion.
	ConfigModeSequential uint16 = 1 << 12

	// MinConversionTime covers both 14-bit conversions (6.35ms + 6.5ms).
	MinConversionTime = 13 * time.Millisecond

	// ResultSize is the length of a sequential-mode conversion result.
	ResultSize = 4
)

// Config holds the fixed parameters of one sensor.
type Config struct {
	BusPath        string
	Address        uint16
	ConfigRegister byte
	ResultRegister byte
	ConfigWord     uint16
	ConversionTime time.Duration
}

// DefaultConfig returns the configuration for a sensor at 0x40 on /dev/i2c-1.
func DefaultConfig() Config {
	return Config{
		BusPath:        "/dev/i2c-1",
		Address:        DefaultAddress,
		ConfigRegister: RegConfig,
		ResultRegister: RegTemperature,
		ConfigWord:     ConfigModeSequential,
		ConversionTime: MinConversionTime,
	}
}

// RawSample is the undecoded conversion result.
type RawSample struct {
	Temperature uint16
	Humidity    uint16
}

// Reading is a converted sample.
type Reading struct {
	Temperature float64 // °C
	Humidity    float64 // %RH
}

// Logger is the logging surface the driver needs.
type Logger interface {
	Debug(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}

// Driver samples one HDC1000. It is not safe for concurrent use.
type Driver struct {
	cfg    Config
	opener i2cbus.Opener
	sleep  func(time.Duration)
	logger Logger
}

// New creates a Driver.
//
// A ConversionTime below MinConversionTime is raised to it.
//
// Parameters:
//   - cfg: Sensor parameters, usually DefaultConfig with BusPath/Address overridden
//   - opener: Opens a fresh bus session per sample
//
// Returns:
//   - *Driver: Ready to sample; no I/O is performed until Sample
func New(cfg Config, opener i2cbus.Opener) *Driver {
	if cfg.ConversionTime < MinConversionTime {
		cfg.ConversionTime = MinConversionTime
	}
	return &Driver{
		cfg:    cfg,
		opener: opener,
		sleep:  time.Sleep,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger used for per-step debug output.
func (d *Driver) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	d.logger = logger
}

// SetSleep replaces the conversion wait, for tests.
func (d *Driver) SetSleep(sleep func(time.Duration)) {
	d.sleep = sleep
}

// Config returns the driver's effective configuration.
func (d *Driver) Config() Config {
	return d.cfg
}

// Sample performs one complete conversion and returns the reading.
func (d *Driver) Sample() (Reading, error) {
	raw, err := d.SampleRaw()
	if err != nil {
		return Reading{}, err
	}
	return raw.Reading(), nil
}

// SampleRaw performs one complete conversion and returns the raw result.
func (d *Driver) SampleRaw() (raw RawSample, err error) {
	bus, err := d.opener.Open(d.cfg.BusPath)
	if err != nil {
		return RawSample{}, fmt.Errorf("%w: %w", ErrOpenDevice, err)
	}
	defer func() {
		if cerr := bus.Close(); cerr != nil {
			d.logger.Debug("closing bus", "path", d.cfg.BusPath, "error", cerr)
		}
	}()

	if err := bus.Select(d.cfg.Address); err != nil {
		return RawSample{}, fmt.Errorf("%w: %w", ErrDeviceSelect, err)
	}

	word := d.cfg.ConfigWord
	if err := bus.Write([]byte{d.cfg.ConfigRegister, byte(word >> 8), byte(word)}); err != nil {
		return RawSample{}, fmt.Errorf("%w: %w", ErrSetup, err)
	}

	if err := bus.Write([]byte{d.cfg.ResultRegister}); err != nil {
		return RawSample{}, fmt.Errorf("%w: %w", ErrRequestConversion, err)
	}

	d.sleep(d.cfg.ConversionTime)

	var buf [ResultSize]byte
	if err := bus.Read(buf[:]); err != nil {
		return RawSample{}, fmt.Errorf("%w: %w", ErrReadResult, err)
	}

	raw = Decode(buf)
	d.logger.Debug("hdc1000 conversion",
		"raw_temperature", raw.Temperature,
		"raw_humidity", raw.Humidity,
	)
	return raw, nil
}

// Decode splits a conversion result into its big-endian halves:
// temperature in bytes 0-1, humidity in bytes 2-3.
func Decode(b [ResultSize]byte) RawSample {
	return RawSample{
		Temperature: binary.BigEndian.Uint16(b[0:2]),
		Humidity:    binary.BigEndian.Uint16(b[2:4]),
	}
}

// Reading converts a raw sample to physical units.
func (r RawSample) Reading() Reading {
	return Reading{
		Temperature: TemperatureCelsius(r.Temperature),
		Humidity:    RelativeHumidity(r.Humidity),
	}
}

// TemperatureCelsius converts a raw temperature word to °C.
func TemperatureCelsius(raw uint16) float64 {
	return float64(raw)/65536.0*165.0 - 40.0
}

// RelativeHumidity converts a raw humidity word to %RH.
func RelativeHumidity(raw uint16) float64 {
	return float64(raw) / 65536.0 * 100.0
}
