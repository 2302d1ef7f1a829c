// SPI byte-transport support for SD/SDHC flash memory cards.
// Implements the byte and buffer transfer primitives that card-protocol
// code builds on, without exposing which bus backend moves the bytes.
package core

// IdleByte is shifted out on the data line whenever the bus is clocked
// only to receive. SD cards require the host to hold the line high (all
// ones) between and during read transfers.
const IdleByte = 0xFF

// Buffer-transfer status codes. The hardware transport never fails and
// always reports StatusOK; the code exists so transports with a fallible
// backend can report problems through the same signature.
const (
	StatusOK       uint8 = 0
	StatusBusError uint8 = 1
)

// Transport is the abstract byte-transfer contract shared by every bus
// variant (dedicated hardware, shared peripheral, bit-banged GPIO).
// Callers issue Begin once, Init at least once, then any sequence of
// send/receive calls. All operations block until the bytes have moved.
type Transport interface {
	// Begin performs one-time pin setup. Must run before Init or any
	// transfer.
	Begin()

	// Init configures the bus clock rate for card access. The divisor is
	// a requested clock divider relative to the system clock; it may be
	// called again at any time to change speed.
	Init(divisor uint8)

	// Receive exchanges one byte, shifting out IdleByte and returning
	// the byte shifted in.
	Receive() byte

	// ReceiveBuf fills buf with received bytes, shifting out IdleByte
	// for each. Returns StatusOK or a nonzero status code.
	ReceiveBuf(buf []byte) uint8

	// Send shifts one byte out, discarding the byte shifted in.
	Send(b byte)

	// SendBuf shifts all bytes of buf out in order.
	SendBuf(buf []byte)

	// UsesBusLocking reports whether this transport sits on a bus that
	// may be time-shared with other devices and therefore needs
	// transaction bracketing by a higher layer. The transport itself
	// never locks.
	UsesBusLocking() bool
}
