package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"sdspi/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate of the probe firmware")
	size    = flag.Int("size", 512, "Payload size for the block check")
	verbose = flag.Bool("verbose", false, "Print every mismatching byte")
)

// commandFrame is a representative 6-byte card command shape (CMD0 with
// its fixed checksum) used to verify short-frame turnaround.
var commandFrame = []byte{0x40, 0x00, 0x00, 0x00, 0x00, 0x95}

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	fmt.Printf("Opening %s at %d baud...\n", cfg.Device, cfg.Baud)
	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	// The probe firmware bridges UART bytes onto the bus; with MISO
	// strapped to MOSI every byte comes straight back.
	if err := roundTrip(port, "command frame", commandFrame); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	block := make([]byte, *size)
	for i := range block {
		block[i] = byte(i)
	}
	if err := roundTrip(port, "block", block); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("All checks passed.")
}

// roundTrip writes payload to the bridge and compares the echo.
func roundTrip(port serial.Port, name string, payload []byte) error {
	if _, err := port.Write(payload); err != nil {
		return fmt.Errorf("%s: write: %w", name, err)
	}
	echo := make([]byte, len(payload))
	if _, err := io.ReadFull(port, echo); err != nil {
		return fmt.Errorf("%s: read echo: %w", name, err)
	}
	if !bytes.Equal(echo, payload) {
		if *verbose {
			for i := range payload {
				if echo[i] != payload[i] {
					fmt.Printf("  byte %d: sent %02X got %02X\n", i, payload[i], echo[i])
				}
			}
		}
		return fmt.Errorf("%s: echo mismatch (%d bytes)", name, len(payload))
	}
	fmt.Printf("%s: %d bytes OK\n", name, len(payload))
	return nil
}
