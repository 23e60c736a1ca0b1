// Package io provides the I/O port and ROM image models for the pagecpu
// emulator. It includes the console output port and the binary-literal ROM
// image reader and writer.
package io

// PORT_CONSOLE is the port index of the console.
const PORT_CONSOLE = 7

// Port defines the interface for all I/O ports in the pagecpu system.
// Ports operate a byte at a time and never block.
type Port interface {
	// Rewind resets the port to its initial state.
	Rewind()
	// Receive returns the next byte from the port.
	Receive() uint8
	// Send writes a single byte to the port.
	Send(value uint8) error
}
