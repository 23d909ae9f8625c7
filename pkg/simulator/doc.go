// Package simulator emulates the dongle firmware in configuration mode.
//
// Dongle implements transport.Transport, so a configurator session can run
// against it without hardware. It keeps a working configuration and an
// EEPROM copy, echoes every received line as "RX: <line>", and answers the
// same commands as the firmware: help, config, test, clear, default, save,
// reboot and set. Faults can be injected to exercise error handling.
package simulator
