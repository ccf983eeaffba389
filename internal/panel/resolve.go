package panel

// Lookups are linear scans in declaration order. A miss returns the zero
// value and false: the matrix is sparse, so a missing cell is normal.

// LEDByAddress finds the LED wired to the given row and column GPIOs.
func (c *Catalog) LEDByAddress(row, col int) (LED, bool) {
	for _, l := range c.LEDs {
		if l.Row == row && l.Col == col {
			return l, true
		}
	}
	return LED{}, false
}

// LEDByPosition finds the LED at the given panel row and column.
func (c *Catalog) LEDByPosition(panelRow, panelCol int) (LED, bool) {
	for _, l := range c.LEDs {
		if l.PanelRow == panelRow && l.PanelCol == panelCol {
			return l, true
		}
	}
	return LED{}, false
}

// SwitchByAddress finds the switch wired to the given row and column GPIOs.
func (c *Catalog) SwitchByAddress(row, col int) (Switch, bool) {
	for _, s := range c.Switches {
		if s.Row == row && s.Col == col {
			return s, true
		}
	}
	return Switch{}, false
}

// SwitchByPosition finds the switch at the given panel row and column.
func (c *Catalog) SwitchByPosition(panelRow, panelCol int) (Switch, bool) {
	for _, s := range c.Switches {
		if s.PanelRow == panelRow && s.PanelCol == panelCol {
			return s, true
		}
	}
	return Switch{}, false
}

// SwitchByNumber finds a switch by its number.
func (c *Catalog) SwitchByNumber(number int) (Switch, bool) {
	for _, s := range c.Switches {
		if s.Number == number {
			return s, true
		}
	}
	return Switch{}, false
}

// Digit finds an octal digit by number.
func (c *Catalog) Digit(number int) (OctalDigit, bool) {
	for _, d := range c.Digits {
		if d.Number == number {
			return d, true
		}
	}
	return OctalDigit{}, false
}

// DigitAt returns the number of the octal digit shown at the given display
// row and column.
func (c *Catalog) DigitAt(displayRow, displayCol int) (int, bool) {
	for _, d := range c.Digits {
		if d.DisplayRow == displayRow && d.DisplayCol == displayCol {
			return d.Number, true
		}
	}
	return 0, false
}

// EncoderLines returns the encoder A/B switches in sampling order:
// enc1.A, enc1.B, enc2.A, enc2.B.
func (c *Catalog) EncoderLines() []Switch {
	var out []Switch
	for _, g := range c.Encoders {
		for _, n := range []int{g.A, g.B} {
			if s, ok := c.SwitchByNumber(n); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// ElectronicOrder lists the LEDs by LED row GPIO, then column GPIO, in
// layout order. Unwired cells are skipped.
func (c *Catalog) ElectronicOrder() []LED {
	var out []LED
	for _, row := range c.Layout.LEDRows {
		for _, col := range c.Layout.Columns {
			if l, ok := c.LEDByAddress(row, col); ok {
				out = append(out, l)
			}
		}
	}
	return out
}

// PhysicalOrder lists the LEDs by panel row, then panel column.
func (c *Catalog) PhysicalOrder() []LED {
	var out []LED
	for r := 1; r <= c.Layout.LEDPanelRows; r++ {
		for col := 1; col <= c.Layout.LEDPanelCols; col++ {
			if l, ok := c.LEDByPosition(r, col); ok {
				out = append(out, l)
			}
		}
	}
	return out
}

// Pins returns every matrix GPIO line: LED rows, switch rows, then columns.
func (l Layout) Pins() []int {
	pins := make([]int, 0, len(l.LEDRows)+len(l.SwitchRows)+len(l.Columns))
	pins = append(pins, l.LEDRows...)
	pins = append(pins, l.SwitchRows...)
	pins = append(pins, l.Columns...)
	return pins
}
