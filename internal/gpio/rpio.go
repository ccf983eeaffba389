//go:build linux

package gpio

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
)

// RpioCapability drives lines through the memory-mapped BCM2835 GPIO
// registers. It needs /dev/gpiomem (or /dev/mem as root).
type RpioCapability struct {
	pins map[int]bool
}

// NewRpioCapability maps the GPIO registers and puts every pin in tristate.
func NewRpioCapability(pins []int) (*RpioCapability, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpio registers: %w", err)
	}
	r := &RpioCapability{pins: make(map[int]bool, len(pins))}
	for _, pin := range pins {
		r.pins[pin] = true
		p := rpio.Pin(pin)
		p.Input()
		p.PullOff()
	}
	return r, nil
}

// Configure sets the direction, level and pull of a line. The output level is
// written before the direction so the line never glitches to the old level.
func (r *RpioCapability) Configure(pin int, mode Mode) error {
	if !r.pins[pin] {
		return fmt.Errorf("configure pin %d: not claimed", pin)
	}
	p := rpio.Pin(pin)
	switch mode {
	case ModeInput:
		p.Input()
		p.PullOff()
	case ModeOutputLow:
		p.PullOff()
		p.Low()
		p.Output()
	case ModeOutputHigh:
		p.PullOff()
		p.High()
		p.Output()
	case ModeInputPullUp:
		p.Input()
		p.PullUp()
	default:
		return fmt.Errorf("configure pin %d: unsupported mode %s", pin, mode)
	}
	return nil
}

// Read returns the raw level of a line.
func (r *RpioCapability) Read(pin int) (bool, error) {
	if !r.pins[pin] {
		return false, fmt.Errorf("read pin %d: not claimed", pin)
	}
	return rpio.Pin(pin).Read() == rpio.High, nil
}

// Close tristates every claimed line and unmaps the registers.
func (r *RpioCapability) Close() error {
	for pin := range r.pins {
		p := rpio.Pin(pin)
		p.Input()
		p.PullOff()
	}
	if err := rpio.Close(); err != nil {
		return fmt.Errorf("close gpio registers: %w", err)
	}
	return nil
}
