//go:build avr

package main

import (
	"machine"

	"sdspi/core"
)

// AVRGPIODriver implements core.GPIODriver on machine.Pin. Used by the
// bit-banged transport when the hardware SPI pins are unavailable.
type AVRGPIODriver struct{}

func (AVRGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinOutput})
	return nil
}

func (AVRGPIODriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return nil
}

func (AVRGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	machine.Pin(pin).Set(value)
	return nil
}

func (AVRGPIODriver) ReadPin(pin core.GPIOPin) bool {
	return machine.Pin(pin).Get()
}
