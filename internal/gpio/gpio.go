// Package gpio provides line-level GPIO access with hardware abstraction.
// The cdev implementation uses the Linux GPIO character device, the rpio
// implementation drives the BCM2835 registers directly, and the sim
// implementation returns pseudo-random levels for running without hardware.
// The fake implementation allows testing without hardware.
package gpio

import (
	"fmt"
	"time"
)

// Mode is the electrical configuration of a single line.
type Mode int

const (
	// ModeInput is a high-impedance input with no bias (tristate).
	ModeInput Mode = iota
	// ModeOutputLow drives the line low.
	ModeOutputLow
	// ModeOutputHigh drives the line high.
	ModeOutputHigh
	// ModeInputPullUp is an input with the weak internal pull-up enabled.
	ModeInputPullUp
)

func (m Mode) String() string {
	switch m {
	case ModeInput:
		return "INPUT"
	case ModeOutputLow:
		return "OUTPUT_LOW"
	case ModeOutputHigh:
		return "OUTPUT_HIGH"
	case ModeInputPullUp:
		return "INPUT_PULLUP"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Driven reports whether the mode actively drives the line.
func (m Mode) Driven() bool {
	return m == ModeOutputLow || m == ModeOutputHigh
}

// Capability configures and reads GPIO lines by BCM number.
type Capability interface {
	// Configure sets the mode of a line.
	Configure(pin int, mode Mode) error

	// Read returns the raw level of a line (true = high).
	Read(pin int) (bool, error)

	// Close returns all lines to tristate and releases GPIO resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendCdev = "cdev"
	BackendRpio = "rpio"
	BackendSim  = "sim"
)

// DefaultChip is the gpiochip carrying the Raspberry Pi header lines.
const DefaultChip = "gpiochip0"

// Open creates the capability for the named backend, claiming the given pins.
func Open(backend, chip string, pins []int) (Capability, error) {
	switch backend {
	case BackendCdev:
		c, err := NewCdevCapability(chip, pins)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRpio:
		r, err := NewRpioCapability(pins)
		if err != nil {
			return nil, err
		}
		return r, nil
	case BackendSim:
		return NewSimCapability(time.Now().UnixNano()), nil
	}
	return nil, fmt.Errorf("gpio: unknown backend %q", backend)
}
