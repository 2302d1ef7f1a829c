//go:build avr && sdspi_soft && !sdspi_lib

package main

import (
	"machine"

	"sdspi/core"
)

// sdspi_soft build: bridge over the bit-banged GPIO transport on the
// Uno header pins (D13 clock, D11 data out, D12 data in).
type bridge struct {
	bus *core.DefaultTransport
}

func newBridge() *bridge {
	b := &bridge{bus: core.NewDefaultTransport(
		AVRGPIODriver{},
		core.GPIOPin(machine.D13),
		core.GPIOPin(machine.D11),
		core.GPIOPin(machine.D12),
	)}
	b.bus.Begin()
	b.bus.Init(startupDivisor)
	return b
}

// exchange clocks out one byte and echoes it back to the host. The
// transport's send path discards the incoming byte, so this confirms
// the byte was clocked out, not what the bus answered.
func (b *bridge) exchange(out byte) byte {
	b.bus.Send(out)
	return out
}
