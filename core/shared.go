package core

import "tinygo.org/x/drivers"

// SharedBus is a general-purpose SPI peripheral that may also serve
// other devices. It extends the drivers.SPI transfer contract with the
// clock/mode configuration Init needs; target code wraps its machine SPI
// controller in this.
type SharedBus interface {
	drivers.SPI

	// Configure sets the SPI mode (0-3) and clock frequency in Hz.
	Configure(mode uint8, freq uint32) error
}

// SharedTransport delegates every transfer to a SharedBus. It carries no
// hardware knowledge of its own beyond the system clock frequency used
// to turn a requested divider into a bus frequency.
type SharedTransport struct {
	bus     SharedBus
	clockHz uint32

	// busErr latches any bus failure until the next ReceiveBuf reports
	// it; the single-byte operations have no error channel.
	busErr bool
}

var _ Transport = (*SharedTransport)(nil)

// NewSharedTransport returns a transport over bus. clockHz is the system
// clock the card divider is relative to.
func NewSharedTransport(bus SharedBus, clockHz uint32) *SharedTransport {
	return &SharedTransport{bus: bus, clockHz: clockHz}
}

// Begin is a no-op: pin routing belongs to whoever owns the shared
// peripheral.
func (t *SharedTransport) Begin() {}

// Init configures the bus for card access: mode 0, MSB first, at the
// closest supported rate not faster than clockHz/divisor. The divider
// request is clamped to the same 2..128 staircase the dedicated
// peripheral supports.
func (t *SharedTransport) Init(divisor uint8) {
	var d uint32
	switch {
	case divisor <= 2:
		d = 2
	case divisor <= 4:
		d = 4
	case divisor <= 8:
		d = 8
	case divisor <= 16:
		d = 16
	case divisor <= 32:
		d = 32
	case divisor <= 64:
		d = 64
	default:
		d = 128
	}
	if err := t.bus.Configure(0, t.clockHz/d); err != nil {
		t.busErr = true
	}
}

// Receive exchanges one byte, shifting out IdleByte.
func (t *SharedTransport) Receive() byte {
	b, err := t.bus.Transfer(IdleByte)
	if err != nil {
		t.busErr = true
	}
	return b
}

// ReceiveBuf fills buf, one exchange per byte so the idle pattern stays
// on the outgoing line throughout. Reports StatusBusError if any
// transfer (or a prior configuration) failed.
func (t *SharedTransport) ReceiveBuf(buf []byte) uint8 {
	status := StatusOK
	if t.busErr {
		status = StatusBusError
		t.busErr = false
	}
	for i := range buf {
		b, err := t.bus.Transfer(IdleByte)
		if err != nil {
			status = StatusBusError
		}
		buf[i] = b
	}
	return status
}

// Send shifts one byte out, discarding the byte shifted in.
func (t *SharedTransport) Send(b byte) {
	if _, err := t.bus.Transfer(b); err != nil {
		t.busErr = true
	}
}

// SendBuf shifts all bytes of buf out in order, discarding the incoming
// bytes.
func (t *SharedTransport) SendBuf(buf []byte) {
	if err := t.bus.Tx(buf, nil); err != nil {
		t.busErr = true
	}
}

// UsesBusLocking reports true: the peripheral is time-shared by
// definition.
func (t *SharedTransport) UsesBusLocking() bool {
	return true
}
