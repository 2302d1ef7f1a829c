//go:build avr

package main

import "machine"

// AVRSharedBus implements core.SharedBus over the machine SPI
// controller, for builds where the peripheral is shared with other
// devices and managed by the machine layer instead of the raw-register
// backend.
type AVRSharedBus struct{}

func (AVRSharedBus) Configure(mode uint8, freq uint32) error {
	return machine.SPI0.Configure(machine.SPIConfig{
		Frequency: freq,
		Mode:      mode,
		LSBFirst:  false,
	})
}

func (AVRSharedBus) Transfer(b byte) (byte, error) {
	return machine.SPI0.Transfer(b)
}

func (AVRSharedBus) Tx(w, r []byte) error {
	return machine.SPI0.Tx(w, r)
}
