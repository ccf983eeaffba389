//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// CdevCapability drives lines through the Linux GPIO character device.
type CdevCapability struct {
	chip  *gpiocdev.Chip
	lines map[int]*gpiocdev.Line
}

// NewCdevCapability opens the chip and requests every pin as a tristate input.
func NewCdevCapability(chipName string, pins []int) (*CdevCapability, error) {
	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer("panel-test"))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	c := &CdevCapability{
		chip:  chip,
		lines: make(map[int]*gpiocdev.Line, len(pins)),
	}
	for _, pin := range pins {
		line, err := chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.WithBiasDisabled)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("request pin %d: %w", pin, err)
		}
		c.lines[pin] = line
	}
	return c, nil
}

// Configure reconfigures a requested line in place.
func (c *CdevCapability) Configure(pin int, mode Mode) error {
	line, ok := c.lines[pin]
	if !ok {
		return fmt.Errorf("configure pin %d: not requested", pin)
	}

	var err error
	switch mode {
	case ModeInput:
		err = line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithBiasDisabled)
	case ModeOutputLow:
		err = line.Reconfigure(gpiocdev.AsOutput(0), gpiocdev.WithBiasDisabled)
	case ModeOutputHigh:
		err = line.Reconfigure(gpiocdev.AsOutput(1), gpiocdev.WithBiasDisabled)
	case ModeInputPullUp:
		err = line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullUp)
	default:
		return fmt.Errorf("configure pin %d: unsupported mode %s", pin, mode)
	}
	if err != nil {
		return fmt.Errorf("configure pin %d %s: %w", pin, mode, err)
	}
	return nil
}

// Read returns the raw level of a requested line.
func (c *CdevCapability) Read(pin int) (bool, error) {
	line, ok := c.lines[pin]
	if !ok {
		return false, fmt.Errorf("read pin %d: not requested", pin)
	}
	v, err := line.Value()
	if err != nil {
		return false, fmt.Errorf("read pin %d: %w", pin, err)
	}
	return v == 1, nil
}

// Close returns every line to a tristate input before releasing it, so the
// matrix is left undriven for whatever uses the panel next.
func (c *CdevCapability) Close() error {
	var errs []error

	for pin, line := range c.lines {
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithBiasDisabled); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure pin %d: %w", pin, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pin %d: %w", pin, err))
		}
		delete(c.lines, pin)
	}
	if c.chip != nil {
		if err := c.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
		c.chip = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
