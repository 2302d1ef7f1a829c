package core

// fastDivider is the effective clock divider the PadDelay calibration in
// ReceiveBuf assumes. At slower clocks a byte takes longer than the fixed
// pad, so the engine falls back to polling the completion flag.
const fastDivider = 2

// HardwareTransport drives the dedicated SPI shift-register peripheral
// directly. The peripheral is a single physical device, so exactly one
// HardwareTransport should exist per bus; construct it once at startup
// and pass it by reference to whatever needs bus access.
//
// All operations busy-wait on the shift-complete flag with no timeout.
// The bus is a private point-to-point link with a single known responder;
// a non-responding card hangs the caller.
type HardwareTransport struct {
	sr ShiftRegister

	// fastClock is set by Init when the effective divider matches the
	// PadDelay calibration.
	fastClock bool
}

var _ Transport = (*HardwareTransport)(nil)

// NewHardwareTransport returns a transport over the given shift-register
// backend. No hardware is touched until Begin.
func NewHardwareTransport(sr ShiftRegister) *HardwareTransport {
	return &HardwareTransport{sr: sr}
}

// Begin configures the bus pins. Call once before Init or any transfer.
func (t *HardwareTransport) Begin() {
	t.sr.SetupPins()
}

// Init programs the bus clock for card access. The peripheral supports
// the divider staircase 2, 4, 8, 16, 32, 64, 128; the smallest supported
// divider >= the request is chosen, and requests beyond 128 clamp to 128.
// Walking the staircase while accumulating the rate-selector code avoids
// a division and a lookup table.
func (t *HardwareTransport) Init(divisor uint8) {
	b := uint8(2)
	r := uint8(0)
	for divisor > b && r < 7 {
		b <<= 1
		if r < 5 {
			r++
		} else {
			r += 2
		}
	}
	// Odd selector codes use the base rate, even ones the 2x clock.
	t.sr.Configure(r>>1, r&1 == 0)
	t.fastClock = b == fastDivider
}

// Receive exchanges one byte, shifting out IdleByte.
func (t *HardwareTransport) Receive() byte {
	t.sr.WriteData(IdleByte)
	t.sr.SyncDelay()
	for !t.sr.TransferComplete() {
	}
	return t.sr.ReadData()
}

// ReceiveBuf fills buf, shifting out IdleByte for every byte. Always
// returns StatusOK.
//
// The loop keeps the bus saturated by retriggering the next transfer
// before storing the previous byte. At the calibrated full bus speed the
// store plus PadDelay already outlasts one byte time, so the completion
// flag is not polled inside the loop; the final byte was not padded and
// gets a real poll. At slower clocks the pad would be too short and the
// loop polls the flag for every byte instead.
func (t *HardwareTransport) ReceiveBuf(buf []byte) uint8 {
	n := len(buf)
	if n == 0 {
		return StatusOK
	}
	t.sr.WriteData(IdleByte)
	for !t.sr.TransferComplete() {
	}
	for i := 0; i < n-1; i++ {
		b := t.sr.ReadData()
		t.sr.WriteData(IdleByte)
		buf[i] = b
		if t.fastClock {
			t.sr.PadDelay()
		} else {
			for !t.sr.TransferComplete() {
			}
		}
	}
	for !t.sr.TransferComplete() {
	}
	buf[n-1] = t.sr.ReadData()
	return StatusOK
}

// Send shifts one byte out, discarding the byte shifted in.
func (t *HardwareTransport) Send(b byte) {
	t.sr.WriteData(b)
	t.sr.SyncDelay()
	for !t.sr.TransferComplete() {
	}
}

// SendBuf shifts all bytes of buf out in order. The next byte is held in
// a local so it can be written the moment the previous transfer
// completes. The trailing poll guarantees the last byte has fully
// shifted out before return, so the caller may immediately reuse the
// buffer or change bus state.
func (t *HardwareTransport) SendBuf(buf []byte) {
	n := len(buf)
	if n == 0 {
		return
	}
	t.sr.WriteData(buf[0])
	if n > 1 {
		b := buf[1]
		i := 2
		for {
			for !t.sr.TransferComplete() {
			}
			t.sr.WriteData(b)
			if i == n {
				break
			}
			b = buf[i]
			i++
		}
	}
	for !t.sr.TransferComplete() {
	}
}

// UsesBusLocking reports true: the peripheral may be shared with other
// devices on the same bus, so multi-step card transactions need
// bracketing by the caller.
func (t *HardwareTransport) UsesBusLocking() bool {
	return true
}
