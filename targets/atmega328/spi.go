//go:build avr

package main

import (
	"device"
	"device/avr"
)

// ATmega328 SPI pin mapping (port B)
const (
	pinSS   = 2 // PB2, bus select
	pinMOSI = 3 // PB3, data out
	pinSCK  = 5 // PB5, clock
)

// AVRShiftRegister implements core.ShiftRegister on the ATmega328 SPI
// peripheral registers (SPCR/SPSR/SPDR).
type AVRShiftRegister struct{}

// SetupPins raises SS before switching it to output mode so the card
// never sees a select glitch, then makes SS, MOSI and SCK outputs. MISO
// stays an input.
func (AVRShiftRegister) SetupPins() {
	avr.PORTB.SetBits(1 << pinSS)
	avr.DDRB.SetBits(1<<pinSS | 1<<pinMOSI | 1<<pinSCK)
}

// Configure programs SPCR with the peripheral enabled, controller mode
// and the two clock-select bits, and SPSR's 2x bit.
func (AVRShiftRegister) Configure(rate uint8, doubleSpeed bool) {
	avr.SPCR.Set(avr.SPCR_SPE | avr.SPCR_MSTR | (rate & 0x03))
	if doubleSpeed {
		avr.SPSR.Set(avr.SPSR_SPI2X)
	} else {
		avr.SPSR.Set(0)
	}
}

func (AVRShiftRegister) WriteData(b byte) {
	avr.SPDR.Set(b)
}

func (AVRShiftRegister) ReadData() byte {
	return avr.SPDR.Get()
}

func (AVRShiftRegister) TransferComplete() bool {
	return avr.SPSR.HasBits(avr.SPSR_SPIF)
}

// SyncDelay is one nop: SPIF can read stale on the cycle right after
// SPDR is written.
func (AVRShiftRegister) SyncDelay() {
	device.Asm("nop")
}

// PadDelay burns eight cycles (adiw is two each). One byte at the 2x
// full rate takes 16 cycles; together with the loop bookkeeping around
// it this exceeds the byte time, which is what lets ReceiveBuf skip the
// SPIF poll on the padded path.
func (AVRShiftRegister) PadDelay() {
	device.Asm("adiw r24, 0")
	device.Asm("adiw r24, 0")
	device.Asm("adiw r24, 0")
	device.Asm("adiw r24, 0")
}
