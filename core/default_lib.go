//go:build sdspi_lib && !sdspi_soft

package core

// Build-selected default: the shared machine SPI peripheral. See
// default_hardware.go for the selection scheme.
type DefaultTransport = SharedTransport

// NewDefaultTransport constructs the build-selected default transport.
func NewDefaultTransport(bus SharedBus, clockHz uint32) *DefaultTransport {
	return NewSharedTransport(bus, clockHz)
}
