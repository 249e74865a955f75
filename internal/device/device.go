// Package device defines a unified interface for serial communication
// devices: the command uplink port and the GPS receiver. It abstracts
// reading and writing line-based data with optional timeouts.
package device

import "time"

// Device defines an abstract interface for line-based communication
// devices (e.g., a drive controller uplink or a GPS receiver).
type Device interface {
	// ReadLine reads a single line terminated by '\n'.
	// If timeout > 0, it must return after timeout even if no data available.
	ReadLine(timeout time.Duration) (string, error)

	// WriteLine writes s followed by '\n' to the device.
	WriteLine(s string) error

	// Close closes the device and releases underlying resources.
	Close() error
}
