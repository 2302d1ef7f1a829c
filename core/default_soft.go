//go:build sdspi_soft && !sdspi_lib

package core

// Build-selected default: the bit-banged GPIO transport. See
// default_hardware.go for the selection scheme.
type DefaultTransport = SoftTransport

// NewDefaultTransport constructs the build-selected default transport on
// the given pins.
func NewDefaultTransport(gpio GPIODriver, sck, mosi, miso GPIOPin) *DefaultTransport {
	return NewSoftTransport(gpio, sck, mosi, miso)
}
