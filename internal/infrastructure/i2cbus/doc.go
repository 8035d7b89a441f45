// Package i2cbus provides byte-level access to a Linux I2C bus.
//
// A Bus is a session on one bus character device. It must be bound to a
// 7-bit peripheral address with Select before any Write or Read. Writes
// and reads are all-or-nothing: a transfer that moves fewer bytes than
// requested is an error.
//
// # Openers
//
// Two Opener implementations are provided:
//
//   - DevOpener opens the character device (for example /dev/i2c-1) and
//     selects the peripheral with the I2C_SLAVE ioctl. Linux only.
//   - PeriphOpener opens the bus through periph.io, which also accepts bus
//     aliases and numbers ("1", "I2C1").
//
// Tests use the scripted fake in the i2cbustest subpackage.
//
// # Usage
//
//	bus, err := i2cbus.DevOpener{}.Open("/dev/i2c-1")
//	if err != nil {
//	    return err
//	}
//	defer bus.Close()
//	if err := bus.Select(0x40); err != nil {
//	    return err
//	}
//	err = bus.Write([]byte{0x00})
package i2cbus
