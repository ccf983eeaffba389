//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// CdevCapability is not available on non-Linux platforms.
type CdevCapability struct{}

// NewCdevCapability returns an error on non-Linux platforms.
func NewCdevCapability(chip string, pins []int) (*CdevCapability, error) {
	return nil, errUnsupported
}

// Configure is not implemented on non-Linux platforms.
func (c *CdevCapability) Configure(pin int, mode Mode) error {
	return errUnsupported
}

// Read is not implemented on non-Linux platforms.
func (c *CdevCapability) Read(pin int) (bool, error) {
	return false, errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (c *CdevCapability) Close() error {
	return nil
}

// RpioCapability is not available on non-Linux platforms.
type RpioCapability struct{}

// NewRpioCapability returns an error on non-Linux platforms.
func NewRpioCapability(pins []int) (*RpioCapability, error) {
	return nil, errUnsupported
}

// Configure is not implemented on non-Linux platforms.
func (r *RpioCapability) Configure(pin int, mode Mode) error {
	return errUnsupported
}

// Read is not implemented on non-Linux platforms.
func (r *RpioCapability) Read(pin int) (bool, error) {
	return false, errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (r *RpioCapability) Close() error {
	return nil
}
