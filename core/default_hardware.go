//go:build !sdspi_lib && !sdspi_soft

package core

// Default transport selection. The program-wide default is chosen at
// build time:
//
//	(no tags)        dedicated hardware shift register
//	-tags sdspi_lib  shared machine SPI peripheral
//	-tags sdspi_soft bit-banged GPIO
//
// Setting both tags selects nothing: no file defines DefaultTransport
// and the build fails, which is the intended outcome for an invalid
// configuration.
type DefaultTransport = HardwareTransport

// NewDefaultTransport constructs the build-selected default transport.
func NewDefaultTransport(sr ShiftRegister) *DefaultTransport {
	return NewHardwareTransport(sr)
}
