//go:build avr

package main

import "machine"

// Probe firmware: a serial-to-SPI byte bridge. Every byte arriving on
// the UART is shifted onto the bus and the bridge's answer byte is
// written back. Which transport carries the byte is the build-tag
// selection from core; each variant supplies its own exchange hookup
// (bridge_*.go).
//
// The startup divider matches card identification speed: <=400 kHz at
// 16 MHz F_CPU needs divider 64 or more.
const (
	startupDivisor = 64
	cpuHz          = 16_000_000
)

func main() {
	machine.Serial.Configure(machine.UARTConfig{BaudRate: 115200})

	bridge := newBridge()

	for {
		b, err := machine.Serial.ReadByte()
		if err != nil {
			continue
		}
		machine.Serial.WriteByte(bridge.exchange(b))
	}
}
