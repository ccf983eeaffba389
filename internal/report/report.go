// Package report formats test results as operator-facing text tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sweeney/panel-test/internal/logic"
	"github.com/sweeney/panel-test/internal/panel"
)

// ColumnWidth is the width of one table column, separating space included.
const ColumnWidth = 9

// fieldWidth is the width of the LED and encoder table fields.
const fieldWidth = 10

// ClearScreen is the ANSI sequence that homes the cursor and clears the terminal.
const ClearScreen = "\033[H\033[2J"

// Reporter writes result tables for one catalog.
type Reporter struct {
	w   io.Writer
	cat *panel.Catalog
}

// New creates a reporter writing to w.
func New(w io.Writer, cat *panel.Catalog) *Reporter {
	return &Reporter{w: w, cat: cat}
}

// Clear clears the terminal.
func (r *Reporter) Clear() {
	fmt.Fprint(r.w, ClearScreen)
}

// Prompt writes an operator prompt without a trailing newline.
func (r *Reporter) Prompt(msg string) {
	fmt.Fprint(r.w, msg)
}

// Blank writes an empty line.
func (r *Reporter) Blank() {
	fmt.Fprintln(r.w)
}

// ConfigEcho lists the catalog four ways, for comparison against the panel
// documentation: LED and switch connection tables by column, then LEDs and
// switches by panel position.
func (r *Reporter) ConfigEcho() {
	l := r.cat.Layout

	for _, col := range l.Columns {
		for _, row := range l.LEDRows {
			if led, ok := r.cat.LEDByAddress(row, col); ok {
				fmt.Fprintf(r.w, "%d %d %s %s\n", col, row, led.Name, led.Function)
			} else {
				fmt.Fprintf(r.w, "%d %d - -\n", col, row)
			}
		}
		r.Blank()
	}

	for _, col := range l.Columns {
		for _, row := range l.SwitchRows {
			if sw, ok := r.cat.SwitchByAddress(row, col); ok {
				fmt.Fprintf(r.w, "%d %d %s %s\n", col, row, sw.Name, sw.Function)
			} else {
				fmt.Fprintf(r.w, "%d %d - -\n", col, row)
			}
		}
		r.Blank()
	}

	for pr := 1; pr <= l.LEDPanelRows; pr++ {
		for pc := 1; pc <= l.LEDPanelCols; pc++ {
			if led, ok := r.cat.LEDByPosition(pr, pc); ok {
				fmt.Fprintf(r.w, "%d %d %s %s\n", pr, pc, led.Name, led.Function)
			}
		}
		r.Blank()
	}

	for pr := 1; pr <= l.SwitchPanelRows; pr++ {
		for pc := 1; pc <= l.SwitchPanelCols; pc++ {
			sw, ok := r.cat.SwitchByPosition(pr, pc)
			if !ok {
				continue
			}
			d, ok := r.cat.Digit(sw.Digit)
			if !ok {
				continue
			}
			fmt.Fprintf(r.w, "%d %d %s %s %d %d %s\n", pr, pc, sw.Name, sw.Function, sw.Digit, sw.Weight, d.Function)
		}
		r.Blank()
	}
}

// LEDHeader writes the heading of an LED cycling table.
func (r *Reporter) LEDHeader(order string) {
	r.Blank()
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", fieldWidth))
	if order == logic.OrderPhysical {
		b.WriteString(center("phys row", fieldWidth))
		b.WriteString(center("phys col", fieldWidth))
	}
	b.WriteString(center("row gpio", fieldWidth))
	b.WriteString(center("col gpio", fieldWidth))
	b.WriteString(center("function", fieldWidth))
	r.line(b.String())
}

// LEDLine writes the line for an LED about to be pulsed.
func (r *Reporter) LEDLine(order string, led panel.LED) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-*s", fieldWidth, "Pulsing"))
	if order == logic.OrderPhysical {
		b.WriteString(center(strconv.Itoa(led.PanelRow), fieldWidth))
		b.WriteString(center(strconv.Itoa(led.PanelCol), fieldWidth))
	}
	b.WriteString(center(strconv.Itoa(led.Row), fieldWidth))
	b.WriteString(center(strconv.Itoa(led.Col), fieldWidth))
	b.WriteString(center(led.Function, fieldWidth))
	r.line(b.String())
}

// SwitchValues lists each switch's digit, weight and logical sample.
func (r *Reporter) SwitchValues(samples map[int]bool) {
	for _, sw := range r.cat.Switches {
		fmt.Fprintf(r.w, "%d, %d %v\n", sw.Digit, sw.Weight, samples[sw.Number])
	}
}

// OctalsSimple lists every digit as "number, current, previous, xor".
func (r *Reporter) OctalsSimple(s logic.SwitchSnapshot) {
	for n := 1; n <= len(s.Current); n++ {
		fmt.Fprintf(r.w, "%d, %d, %d, %d\n", n, s.Current.Digit(n), s.Previous.Digit(n), s.XOR.Digit(n))
	}
	r.Blank()
}

// OctalsFancy lays the digits out as they sit on the panel. Each display row
// gets a heading of digit functions, wrapped over as many lines as the
// longest function needs, then Current, Previous and XOR value lines.
func (r *Reporter) OctalsFancy(s logic.SwitchSnapshot) {
	l := r.cat.Layout
	text := ColumnWidth - 1

	for row := 1; row <= l.DigitRows; row++ {
		cells := make([]panel.OctalDigit, l.DigitCols)
		present := make([]bool, l.DigitCols)
		maxLen := 0
		for col := 1; col <= l.DigitCols; col++ {
			n, ok := r.cat.DigitAt(row, col)
			if !ok {
				continue
			}
			d, _ := r.cat.Digit(n)
			cells[col-1], present[col-1] = d, true
			if len(d.Function) > maxLen {
				maxLen = len(d.Function)
			}
		}

		headingLines := (maxLen + text - 1) / text
		for i := 0; i < headingLines; i++ {
			var b strings.Builder
			b.WriteString(strings.Repeat(" ", ColumnWidth))
			for c, d := range cells {
				chunk := ""
				if present[c] {
					chunk = slice(d.Function, i*text, (i+1)*text)
				}
				b.WriteString(center(chunk, ColumnWidth))
			}
			r.line(b.String())
		}

		for _, vl := range []struct {
			label  string
			values logic.OctalValues
		}{
			{"Current", s.Current},
			{"Previous", s.Previous},
			{"XOR", s.XOR},
		} {
			var b strings.Builder
			b.WriteString(fmt.Sprintf("%-*.*s", ColumnWidth, text, vl.label))
			for c, d := range cells {
				v := ""
				if present[c] {
					v = strconv.Itoa(vl.values.Digit(d.Number))
				}
				b.WriteString(center(v, ColumnWidth))
			}
			r.line(b.String())
		}
		r.Blank()
	}
}

// EncoderHeader writes the heading of the encoder counter table.
func (r *Reporter) EncoderHeader() {
	r.Blank()
	var b strings.Builder
	for i := 1; i <= panel.NumEncoders; i++ {
		b.WriteString(center(fmt.Sprintf("Encoder %d", i), fieldWidth))
	}
	r.line(b.String())
}

// EncoderCounts writes one line of encoder counters.
func (r *Reporter) EncoderCounts(counts [panel.NumEncoders]int) {
	var b strings.Builder
	for _, c := range counts {
		b.WriteString(center(strconv.Itoa(c), fieldWidth))
	}
	r.line(b.String())
}

func (r *Reporter) line(s string) {
	fmt.Fprintln(r.w, strings.TrimRight(s, " "))
}

// center pads s to width with spaces on both sides. When the padding is odd
// the extra space goes left if width is odd, right otherwise. Strings at
// least width long are returned unchanged.
func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad/2 + (pad & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

func slice(s string, from, to int) string {
	if from >= len(s) {
		return ""
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}
