//go:build avr && sdspi_lib && !sdspi_soft

package main

import "sdspi/core"

// sdspi_lib build: bridge over the shared machine SPI controller.
type bridge struct {
	raw AVRSharedBus
	bus *core.DefaultTransport
}

func newBridge() *bridge {
	b := &bridge{bus: core.NewDefaultTransport(AVRSharedBus{}, cpuHz)}
	b.bus.Begin()
	b.bus.Init(startupDivisor)
	return b
}

// exchange shifts out one byte and returns the byte shifted in, straight
// off the controller since the transport's send path discards it.
func (b *bridge) exchange(out byte) byte {
	in, err := b.raw.Transfer(out)
	if err != nil {
		return 0
	}
	return in
}
