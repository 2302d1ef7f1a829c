package core

// SoftTransport emulates the bus protocol by toggling three GPIO lines
// directly (mode 0, MSB first). It is the fallback for boards whose
// hardware SPI pins are already spoken for. Throughput is whatever the
// pin toggling achieves; the clock divider is ignored.
type SoftTransport struct {
	gpio GPIODriver
	sck  GPIOPin
	mosi GPIOPin
	miso GPIOPin
}

var _ Transport = (*SoftTransport)(nil)

// NewSoftTransport returns a bit-banged transport on the given pins:
// sck clock out, mosi data out, miso data in.
func NewSoftTransport(gpio GPIODriver, sck, mosi, miso GPIOPin) *SoftTransport {
	return &SoftTransport{gpio: gpio, sck: sck, mosi: mosi, miso: miso}
}

// Begin configures the pins and parks the bus idle: clock low (mode 0),
// data out high so the card sees the idle pattern.
func (t *SoftTransport) Begin() {
	t.gpio.ConfigureOutput(t.sck)
	t.gpio.ConfigureOutput(t.mosi)
	t.gpio.ConfigureInputPullUp(t.miso)
	t.gpio.SetPin(t.sck, false)
	t.gpio.SetPin(t.mosi, true)
}

// Init is a no-op: the bit-bang pacing sets the clock rate, not a
// divider register.
func (t *SoftTransport) Init(divisor uint8) {}

func (t *SoftTransport) transfer(out byte) byte {
	var in byte
	for bit := 7; bit >= 0; bit-- {
		t.gpio.SetPin(t.mosi, out&(1<<bit) != 0)
		// Mode 0: the card samples on the rising edge, we sample before
		// raising the clock.
		if t.gpio.ReadPin(t.miso) {
			in |= 1 << bit
		}
		t.gpio.SetPin(t.sck, true)
		t.gpio.SetPin(t.sck, false)
	}
	return in
}

// Receive exchanges one byte, shifting out IdleByte.
func (t *SoftTransport) Receive() byte {
	return t.transfer(IdleByte)
}

// ReceiveBuf fills buf one exchange at a time. Always returns StatusOK.
func (t *SoftTransport) ReceiveBuf(buf []byte) uint8 {
	for i := range buf {
		buf[i] = t.transfer(IdleByte)
	}
	return StatusOK
}

// Send shifts one byte out, discarding the byte shifted in.
func (t *SoftTransport) Send(b byte) {
	t.transfer(b)
}

// SendBuf shifts all bytes of buf out in order.
func (t *SoftTransport) SendBuf(buf []byte) {
	for _, b := range buf {
		t.transfer(b)
	}
}

// UsesBusLocking reports false: the transport owns its pins exclusively,
// so no transaction bracketing is needed.
func (t *SoftTransport) UsesBusLocking() bool {
	return false
}
