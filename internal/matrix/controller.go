// Package matrix drives the multiplexed LED/switch matrix one cell at a time.
package matrix

import (
	"errors"
	"fmt"

	"github.com/sweeney/panel-test/internal/gpio"
	"github.com/sweeney/panel-test/internal/panel"
)

// RowMode is the state of a row line.
type RowMode int

const (
	RowTristate RowMode = iota
	RowLow
	RowHigh
)

// ColumnMode is the state of a column line.
type ColumnMode int

const (
	ColumnTristate ColumnMode = iota
	ColumnLow
	ColumnHigh
	ColumnInput // input with weak pull-up
)

type role int

const (
	roleLEDRow role = iota + 1
	roleSwitchRow
	roleColumn
)

func (r role) String() string {
	switch r {
	case roleLEDRow:
		return "LED row"
	case roleSwitchRow:
		return "switch row"
	case roleColumn:
		return "column"
	}
	return "unassigned"
}

// Controller applies row and column modes to the GPIO capability, checking
// each pin against the role it was registered with.
//
// Asking for a mode on a pin outside its role is a wiring-table bug and
// panics. Hardware errors are returned.
type Controller struct {
	gpio   gpio.Capability
	layout panel.Layout
	roles  map[int]role
}

// NewController registers the pins of the layout with their roles.
func NewController(c gpio.Capability, layout panel.Layout) *Controller {
	ctl := &Controller{
		gpio:   c,
		layout: layout,
		roles:  make(map[int]role),
	}
	for _, p := range layout.LEDRows {
		ctl.roles[p] = roleLEDRow
	}
	for _, p := range layout.SwitchRows {
		ctl.roles[p] = roleSwitchRow
	}
	for _, p := range layout.Columns {
		ctl.roles[p] = roleColumn
	}
	return ctl
}

// Pins returns every pin the controller manages: LED rows, switch rows, then
// columns.
func (c *Controller) Pins() []int {
	return c.layout.Pins()
}

// SetLEDRow sets the state of an LED row.
func (c *Controller) SetLEDRow(pin int, mode RowMode) error {
	c.mustHaveRole(pin, roleLEDRow)
	return c.configure(pin, rowMode(pin, mode))
}

// SetSwitchRow sets the state of a switch row.
func (c *Controller) SetSwitchRow(pin int, mode RowMode) error {
	c.mustHaveRole(pin, roleSwitchRow)
	return c.configure(pin, rowMode(pin, mode))
}

// SetColumn sets the state of a column.
func (c *Controller) SetColumn(pin int, mode ColumnMode) error {
	c.mustHaveRole(pin, roleColumn)
	var m gpio.Mode
	switch mode {
	case ColumnTristate:
		m = gpio.ModeInput
	case ColumnLow:
		m = gpio.ModeOutputLow
	case ColumnHigh:
		m = gpio.ModeOutputHigh
	case ColumnInput:
		m = gpio.ModeInputPullUp
	default:
		panic(fmt.Sprintf("matrix: invalid column mode %d for pin %d", mode, pin))
	}
	return c.configure(pin, m)
}

// ReadColumn returns the raw level of a column.
func (c *Controller) ReadColumn(pin int) (bool, error) {
	c.mustHaveRole(pin, roleColumn)
	v, err := c.gpio.Read(pin)
	if err != nil {
		return false, fmt.Errorf("read column %d: %w", pin, err)
	}
	return v, nil
}

// ResetAll puts every row and column into tristate. This is the quiescent
// state required between scan operations: no line is driven. A line that
// fails does not stop the others from being released.
func (c *Controller) ResetAll() error {
	var errs []error
	for _, p := range c.Pins() {
		if err := c.configure(p, gpio.ModeInput); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Controller) configure(pin int, mode gpio.Mode) error {
	if err := c.gpio.Configure(pin, mode); err != nil {
		return fmt.Errorf("set %s %d to %s: %w", c.roles[pin], pin, mode, err)
	}
	return nil
}

func (c *Controller) mustHaveRole(pin int, want role) {
	if got := c.roles[pin]; got != want {
		panic(fmt.Sprintf("matrix: pin %d is a %s, not a %s", pin, got, want))
	}
}

func rowMode(pin int, mode RowMode) gpio.Mode {
	switch mode {
	case RowTristate:
		return gpio.ModeInput
	case RowLow:
		return gpio.ModeOutputLow
	case RowHigh:
		return gpio.ModeOutputHigh
	}
	panic(fmt.Sprintf("matrix: invalid row mode %d for pin %d", mode, pin))
}
