package core

// GPIOPin identifies a hardware GPIO pin number
type GPIOPin uint32

// GPIODriver is the abstract GPIO interface the bit-banged transport
// uses. Platform-specific implementations handle actual hardware
// control; tests supply an in-memory one.
type GPIODriver interface {
	// ConfigureOutput configures a pin as a digital output
	ConfigureOutput(pin GPIOPin) error

	// ConfigureInputPullUp configures a pin as a digital input with
	// pull-up resistor
	ConfigureInputPullUp(pin GPIOPin) error

	// SetPin sets the pin to high (true) or low (false)
	SetPin(pin GPIOPin, value bool) error

	// ReadPin reads the current pin state
	ReadPin(pin GPIOPin) bool
}
