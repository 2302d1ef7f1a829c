package core

import (
	"bytes"
	"testing"
)

// mockShiftRegister simulates the SPI peripheral. Writing the data
// register starts a "transfer": the outgoing byte is recorded, the
// incoming byte is taken from a script (or looped back), and the
// completion flag stays low for a few polls to mimic shift time.
type mockShiftRegister struct {
	script   []byte // bytes the responder shifts back, consumed in order
	loopback bool   // data-out strapped to data-in
	sent     []byte // every byte shifted out, in order

	data     byte // data register (last completed incoming byte)
	pending  byte // byte in flight
	busy     int  // polls remaining before the flag reads set
	latency  int  // busy reset value per transfer
	complete bool

	pinsSetup bool
	rate      uint8
	double    bool
	configs   int

	polls int
	pads  int
	syncs int
}

func (m *mockShiftRegister) SetupPins() { m.pinsSetup = true }

func (m *mockShiftRegister) Configure(rate uint8, doubleSpeed bool) {
	m.rate = rate
	m.double = doubleSpeed
	m.configs++
}

func (m *mockShiftRegister) WriteData(b byte) {
	if !m.complete && len(m.sent) > 0 {
		panic("WriteData while transfer in flight")
	}
	m.sent = append(m.sent, b)
	switch {
	case m.loopback:
		m.pending = b
	case len(m.script) > 0:
		m.pending = m.script[0]
		m.script = m.script[1:]
	default:
		m.pending = 0xFF // idle bus reads all ones
	}
	m.busy = m.latency
	m.complete = false
}

func (m *mockShiftRegister) ReadData() byte { return m.data }

func (m *mockShiftRegister) TransferComplete() bool {
	m.polls++
	if m.busy > 0 {
		m.busy--
		return false
	}
	if !m.complete {
		m.complete = true
		m.data = m.pending
	}
	return true
}

func (m *mockShiftRegister) SyncDelay() { m.syncs++ }

// PadDelay is calibrated to outlast a byte time, so the mock completes
// the in-flight transfer unconditionally.
func (m *mockShiftRegister) PadDelay() {
	m.pads++
	m.busy = 0
	m.complete = true
	m.data = m.pending
}

func newMock() *mockShiftRegister {
	return &mockShiftRegister{latency: 3, complete: true}
}

func TestBeginSetsUpPins(t *testing.T) {
	m := newMock()
	tr := NewHardwareTransport(m)
	tr.Begin()
	if !m.pinsSetup {
		t.Fatal("Begin did not configure bus pins")
	}
}

func TestInitDividerStaircase(t *testing.T) {
	testCases := []struct {
		divisor uint8
		rate    uint8
		double  bool
		divider uint8 // effective divider for reference
	}{
		{0, 0, true, 2},
		{1, 0, true, 2},
		{2, 0, true, 2},
		{3, 0, false, 4},
		{4, 0, false, 4},
		{5, 1, true, 8},
		{8, 1, true, 8},
		{9, 1, false, 16},
		{16, 1, false, 16},
		{17, 2, true, 32},
		{32, 2, true, 32},
		{33, 2, false, 64},
		{64, 2, false, 64},
		{65, 3, false, 128},
		{128, 3, false, 128},
		{130, 3, false, 128}, // beyond the staircase: clamp to slowest
		{255, 3, false, 128},
	}

	for _, tc := range testCases {
		m := newMock()
		tr := NewHardwareTransport(m)
		tr.Init(tc.divisor)
		if m.configs != 1 {
			t.Fatalf("divisor %d: Configure called %d times", tc.divisor, m.configs)
		}
		if m.rate != tc.rate || m.double != tc.double {
			t.Errorf("divisor %d: got rate=%d double=%v, want rate=%d double=%v (divider %d)",
				tc.divisor, m.rate, m.double, tc.rate, tc.double, tc.divider)
		}
	}
}

func TestInitRepeatable(t *testing.T) {
	m := newMock()
	tr := NewHardwareTransport(m)
	tr.Init(2)
	tr.Init(64)
	tr.Init(2)
	if m.configs != 3 {
		t.Errorf("expected 3 Configure calls, got %d", m.configs)
	}
	if m.rate != 0 || !m.double {
		t.Errorf("final Init(2) not in effect: rate=%d double=%v", m.rate, m.double)
	}
}

func TestReceiveShiftsOutIdle(t *testing.T) {
	m := newMock()
	m.script = []byte{0x5A}
	tr := NewHardwareTransport(m)
	b := tr.Receive()
	if b != 0x5A {
		t.Errorf("Receive returned %02X, want 5A", b)
	}
	if len(m.sent) != 1 || m.sent[0] != IdleByte {
		t.Errorf("Receive shifted out %v, want [FF]", m.sent)
	}
	if m.syncs != 1 {
		t.Errorf("expected one sync delay before the first poll, got %d", m.syncs)
	}
}

// Buffer receive and n single receives must be indistinguishable given
// the same bus stimulus.
func TestReceiveBufMatchesSingleReceives(t *testing.T) {
	stimulus := func(n int) []byte {
		s := make([]byte, n)
		for i := range s {
			s[i] = byte(i*7 + 3)
		}
		return s
	}

	for _, n := range []int{0, 1, 2, 3, 16, 512} {
		mBuf := newMock()
		mBuf.script = stimulus(n)
		trBuf := NewHardwareTransport(mBuf)
		trBuf.Init(2)
		buf := make([]byte, n)
		if status := trBuf.ReceiveBuf(buf); status != StatusOK {
			t.Fatalf("n=%d: status %d", n, status)
		}

		mOne := newMock()
		mOne.script = stimulus(n)
		trOne := NewHardwareTransport(mOne)
		trOne.Init(2)
		one := make([]byte, n)
		for i := range one {
			one[i] = trOne.Receive()
		}

		if !bytes.Equal(buf, one) {
			t.Errorf("n=%d: ReceiveBuf %v != repeated Receive %v", n, buf, one)
		}
		if !bytes.Equal(mBuf.sent, mOne.sent) {
			t.Errorf("n=%d: outgoing bytes differ: %v vs %v", n, mBuf.sent, mOne.sent)
		}
	}
}

func TestReceiveBufEmptyIsNoOp(t *testing.T) {
	m := newMock()
	tr := NewHardwareTransport(m)
	if status := tr.ReceiveBuf(nil); status != StatusOK {
		t.Fatalf("status %d", status)
	}
	if len(m.sent) != 0 || m.polls != 0 {
		t.Errorf("empty receive touched the bus: sent=%v polls=%d", m.sent, m.polls)
	}
}

func TestReceiveBufFastPathSkipsPolling(t *testing.T) {
	m := newMock()
	m.script = []byte{1, 2, 3, 4, 5, 6, 7, 8}
	tr := NewHardwareTransport(m)
	tr.Init(2) // calibrated rate: padded path
	buf := make([]byte, 8)
	tr.ReceiveBuf(buf)
	if m.pads != 7 {
		t.Errorf("expected 7 pad delays for 8 bytes, got %d", m.pads)
	}
	if !bytes.Equal(buf, []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("got %v", buf)
	}
}

func TestReceiveBufSlowClockPollsEveryByte(t *testing.T) {
	m := newMock()
	m.script = []byte{1, 2, 3, 4}
	tr := NewHardwareTransport(m)
	tr.Init(64) // pad calibration does not hold: flag-polled path
	buf := make([]byte, 4)
	tr.ReceiveBuf(buf)
	if m.pads != 0 {
		t.Errorf("slow clock used %d pad delays, want 0", m.pads)
	}
	if !bytes.Equal(buf, []byte{1, 2, 3, 4}) {
		t.Errorf("got %v", buf)
	}
}

func TestSendBufMatchesSingleSends(t *testing.T) {
	payload := func(n int) []byte {
		p := make([]byte, n)
		for i := range p {
			p[i] = byte(255 - i)
		}
		return p
	}

	for _, n := range []int{0, 1, 2, 5, 512} {
		mBuf := newMock()
		trBuf := NewHardwareTransport(mBuf)
		trBuf.SendBuf(payload(n))

		mOne := newMock()
		trOne := NewHardwareTransport(mOne)
		for _, b := range payload(n) {
			trOne.Send(b)
		}

		if !bytes.Equal(mBuf.sent, mOne.sent) {
			t.Errorf("n=%d: SendBuf wire bytes %v != repeated Send %v", n, mBuf.sent, mOne.sent)
		}
	}
}

func TestSendBufCompletesBeforeReturn(t *testing.T) {
	m := newMock()
	tr := NewHardwareTransport(m)
	tr.SendBuf([]byte{0xA5, 0x5A, 0xC3})
	if !m.complete {
		t.Error("SendBuf returned with the final byte still shifting")
	}
	if !bytes.Equal(m.sent, []byte{0xA5, 0x5A, 0xC3}) {
		t.Errorf("wire bytes %v", m.sent)
	}
}

// Round trip on a loopback bus: data-out strapped to data-in.
func TestLoopbackRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 8, 512} {
		m := newMock()
		m.loopback = true
		tr := NewHardwareTransport(m)
		tr.Begin()
		tr.Init(2)

		out := make([]byte, n)
		for i := range out {
			out[i] = byte(i ^ 0x6B)
		}
		tr.SendBuf(out)

		// Loopback echoes whatever is shifted out; during receive that
		// is the idle pattern. Script the mock as the card would answer
		// instead.
		m.loopback = false
		m.script = append([]byte(nil), out...)
		in := make([]byte, n)
		if status := tr.ReceiveBuf(in); status != StatusOK {
			t.Fatalf("n=%d: status %d", n, status)
		}
		if !bytes.Equal(in, out) {
			t.Errorf("n=%d: round trip got %v want %v", n, in, out)
		}
	}
}

// Full exchange shape: a 6-byte command frame out, 5 response bytes in,
// the last of them via the completion-flag poll.
func TestCommandFrameExchange(t *testing.T) {
	m := newMock()
	tr := NewHardwareTransport(m)
	tr.Begin()
	tr.Init(4)

	frame := []byte{0x40, 0x00, 0x00, 0x00, 0x00, 0x95}
	tr.SendBuf(frame)
	if !bytes.Equal(m.sent, frame) {
		t.Fatalf("frame on wire %v, want %v", m.sent, frame)
	}

	m.sent = nil
	m.script = []byte{0x01, 0x00, 0x00, 0x01, 0xAA}
	resp := make([]byte, 5)
	if status := tr.ReceiveBuf(resp); status != StatusOK {
		t.Fatalf("status %d", status)
	}
	if !bytes.Equal(resp, []byte{0x01, 0x00, 0x00, 0x01, 0xAA}) {
		t.Errorf("response %v", resp)
	}
	for _, b := range m.sent {
		if b != IdleByte {
			t.Errorf("receive shifted out %02X, want idle pattern", b)
		}
	}
}

func TestHardwareUsesBusLocking(t *testing.T) {
	tr := NewHardwareTransport(newMock())
	if !tr.UsesBusLocking() {
		t.Error("hardware transport must request bus locking")
	}
	tr.Init(32)
	tr.Send(0x00)
	if !tr.UsesBusLocking() {
		t.Error("locking requirement changed across calls")
	}
}

func TestDefaultTransportIsHardware(t *testing.T) {
	// Untagged builds must default to the dedicated peripheral.
	var tr *DefaultTransport
	var _ *HardwareTransport = tr
}
