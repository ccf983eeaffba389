package panel

import (
	"errors"
	"fmt"
)

type address struct{ row, col int }

// Validate checks the field-level invariants of the catalog. It is run once
// at startup; any violation is a wiring-table bug.
func (c *Catalog) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	ledRows := toSet(c.Layout.LEDRows)
	switchRows := toSet(c.Layout.SwitchRows)
	columns := toSet(c.Layout.Columns)
	for r := range ledRows {
		if switchRows[r] {
			fail("row %d is both an LED row and a switch row", r)
		}
		if columns[r] {
			fail("pin %d is both an LED row and a column", r)
		}
	}
	for r := range switchRows {
		if columns[r] {
			fail("pin %d is both a switch row and a column", r)
		}
	}

	numbers := make(map[int]bool)
	addrs := make(map[address]int)
	for _, l := range c.LEDs {
		if l.Number < 1 || l.Number > NumLEDs {
			fail("LED%d: number out of range", l.Number)
		}
		if numbers[l.Number] {
			fail("LED%d: duplicate number", l.Number)
		}
		numbers[l.Number] = true
		if !ledRows[l.Row] {
			fail("LED%d: row %d is not an LED row", l.Number, l.Row)
		}
		if !columns[l.Col] {
			fail("LED%d: column %d is not a column", l.Number, l.Col)
		}
		a := address{l.Row, l.Col}
		if other, ok := addrs[a]; ok {
			fail("LED%d: address (%d,%d) already used by LED%d", l.Number, l.Row, l.Col, other)
		}
		addrs[a] = l.Number
	}

	digitNumbers := make(map[int]bool)
	for _, d := range c.Digits {
		if digitNumbers[d.Number] {
			fail("digit %d: duplicate number", d.Number)
		}
		digitNumbers[d.Number] = true
	}

	numbers = make(map[int]bool)
	addrs = make(map[address]int)
	weights := make(map[[2]int]int) // (digit, weight) -> switch
	for _, s := range c.Switches {
		if s.Number < 1 || s.Number > NumSwitches || s.Number == 20 || s.Number == 27 {
			fail("SW%d: number not allowed", s.Number)
		}
		if numbers[s.Number] {
			fail("SW%d: duplicate number", s.Number)
		}
		numbers[s.Number] = true
		if !switchRows[s.Row] {
			fail("SW%d: row %d is not a switch row", s.Number, s.Row)
		}
		if !columns[s.Col] {
			fail("SW%d: column %d is not a column", s.Number, s.Col)
		}
		a := address{s.Row, s.Col}
		if other, ok := addrs[a]; ok {
			fail("SW%d: address (%d,%d) already used by SW%d", s.Number, s.Row, s.Col, other)
		}
		addrs[a] = s.Number
		if !digitNumbers[s.Digit] {
			fail("SW%d: octal digit %d does not exist", s.Number, s.Digit)
		}
		switch s.Weight {
		case 0:
		case 1, 2, 4:
			k := [2]int{s.Digit, s.Weight}
			if other, ok := weights[k]; ok {
				fail("SW%d: weight %d of digit %d already used by SW%d", s.Number, s.Weight, s.Digit, other)
			}
			weights[k] = s.Number
		default:
			fail("SW%d: weight %d not in {0,1,2,4}", s.Number, s.Weight)
		}
	}

	for _, g := range c.Encoders {
		for _, n := range []int{g.A, g.B} {
			if !numbers[n] {
				fail("encoder %s: switch %d does not exist", g.Name, n)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("panel: invalid catalog: %w", errors.Join(errs...))
	}
	return nil
}

func toSet(pins []int) map[int]bool {
	m := make(map[int]bool, len(pins))
	for _, p := range pins {
		m[p] = true
	}
	return m
}
