package core

// ShiftRegister is the narrow hardware boundary under HardwareTransport.
// It covers exactly the registers and flags the transfer engine touches;
// target-specific code provides the real implementation, tests provide a
// scripted one.
type ShiftRegister interface {
	// SetupPins drives the bus-select line high (deselect) and switches
	// the select, data-out and clock lines to output mode. The data-in
	// line stays an input.
	SetupPins()

	// Configure programs the peripheral control register with the given
	// rate-selector code (low bits of the divider staircase walk), with
	// the peripheral enabled and this device as bus controller. The
	// doubleSpeed flag programs the status register's 2x clock bit.
	Configure(rate uint8, doubleSpeed bool)

	// WriteData writes a byte into the shift register, starting a
	// transfer.
	WriteData(b byte)

	// ReadData reads the byte shifted in by the last completed transfer.
	ReadData() byte

	// TransferComplete reports the shift-complete status flag.
	TransferComplete() bool

	// SyncDelay burns a single cycle between triggering a transfer and
	// the first status poll. Reading the flag immediately after the
	// trigger can observe a stale value.
	SyncDelay()

	// PadDelay burns a fixed number of cycles known to exceed one byte
	// time at the calibrated full bus speed, so the completion flag need
	// not be polled. Only valid at that speed.
	PadDelay()
}
