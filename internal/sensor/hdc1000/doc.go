// Package hdc1000 drives a Texas Instruments HDC1000 humidity and
// temperature sensor over an I2C bus.
//
// # Protocol
//
// Each call to Driver.Sample opens a fresh bus session and performs one
// on-demand conversion of both quantities:
//
//  1. open the bus and select the sensor address (0x40 by default)
//  2. write the configuration register: {0x02, 0x10, 0x00}, which sets
//     bit 12 so temperature and humidity are acquired together
//  3. write the result register pointer {0x00} to trigger the conversion
//  4. wait at least 13ms for the conversion to complete
//  5. read 4 bytes: temperature then humidity, each big-endian
//
// The bus is closed again before Sample returns, on success or failure.
// Nothing is retried; every failure is returned wrapped in one of the
// step sentinels (ErrOpenDevice, ErrDeviceSelect, ErrSetup,
// ErrRequestConversion, ErrReadResult).
//
// # Conversion
//
//	°C  = raw / 65536 × 165 − 40
//	%RH = raw / 65536 × 100
//
// Values are neither rounded nor clamped.
package hdc1000
