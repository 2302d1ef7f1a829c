//go:build avr && !sdspi_lib && !sdspi_soft

package main

import "sdspi/core"

// Default build: bridge over the dedicated shift-register peripheral.
type bridge struct {
	sr  AVRShiftRegister
	bus *core.DefaultTransport
}

func newBridge() *bridge {
	sr := AVRShiftRegister{}
	b := &bridge{sr: sr, bus: core.NewDefaultTransport(sr)}
	b.bus.Begin()
	b.bus.Init(startupDivisor)
	return b
}

// exchange shifts b out and returns the byte the bus shifted in. Send
// discards the incoming byte but the shift register still latched it.
func (b *bridge) exchange(out byte) byte {
	b.bus.Send(out)
	return b.sr.ReadData()
}
