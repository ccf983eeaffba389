package matrix

import (
	"fmt"
	"log"
	"time"

	"github.com/sweeney/panel-test/internal/panel"
)

// Timing holds the scan waits.
type Timing struct {
	LEDPulse      time.Duration // how long an LED stays lit
	SwitchSettle  time.Duration // wait between driving a switch row and reading
	EncoderSettle time.Duration // same, for encoder lines
}

// DefaultTiming returns the waits used on real hardware.
func DefaultTiming() Timing {
	return Timing{
		LEDPulse:      250 * time.Millisecond,
		SwitchSettle:  10 * time.Millisecond,
		EncoderSettle: 0,
	}
}

// Sleeper blocks for a duration.
type Sleeper func(time.Duration)

// LogWait is a Sleeper that logs the wait instead of sleeping. It is used with
// the simulated GPIO backend.
func LogWait(d time.Duration) {
	log.Printf("matrix: waiting %dms", d.Milliseconds())
}

// Scanner activates exactly one row and one column at a time, and returns
// every line to tristate after each operation.
type Scanner struct {
	ctl    *Controller
	cat    *panel.Catalog
	timing Timing
	sleep  Sleeper
}

// NewScanner creates a scanner. A nil sleeper means time.Sleep.
func NewScanner(ctl *Controller, cat *panel.Catalog, timing Timing, sleep Sleeper) *Scanner {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Scanner{
		ctl:    ctl,
		cat:    cat,
		timing: timing,
		sleep:  sleep,
	}
}

// Timing returns the scanner's waits.
func (s *Scanner) Timing() Timing {
	return s.timing
}

// Pulse lights the LED at the given address for the pulse duration. It
// returns false without touching any line if no LED is wired there.
func (s *Scanner) Pulse(row, col int) (bool, error) {
	if _, ok := s.cat.LEDByAddress(row, col); !ok {
		return false, nil
	}

	err := s.ctl.SetLEDRow(row, RowHigh)
	if err == nil {
		err = s.ctl.SetColumn(col, ColumnLow)
	}
	if err == nil {
		s.sleep(s.timing.LEDPulse)
	}
	if rerr := s.ctl.ResetAll(); err == nil {
		err = rerr
	}
	if err != nil {
		return true, fmt.Errorf("pulse LED (%d,%d): %w", row, col, err)
	}
	return true, nil
}

// Sample reads the switch at the given address. The second result is false
// if no switch is wired there. The value is the logical state: the raw column
// level XOR the switch's invert flag.
func (s *Scanner) Sample(row, col int, settle time.Duration) (bool, bool, error) {
	sw, ok := s.cat.SwitchByAddress(row, col)
	if !ok {
		return false, false, nil
	}
	v, err := s.sample(sw, settle)
	return v, true, err
}

func (s *Scanner) sample(sw panel.Switch, settle time.Duration) (bool, error) {
	var raw bool
	err := s.ctl.ResetAll()
	if err == nil {
		err = s.ctl.SetColumn(sw.Col, ColumnInput)
	}
	if err == nil {
		err = s.ctl.SetSwitchRow(sw.Row, RowLow)
	}
	if err == nil {
		s.sleep(settle)
		raw, err = s.ctl.ReadColumn(sw.Col)
	}
	if rerr := s.ctl.ResetAll(); err == nil {
		err = rerr
	}
	if err != nil {
		return false, fmt.Errorf("sample %s (%d,%d): %w", sw.Name, sw.Row, sw.Col, err)
	}
	return raw != sw.Invert, nil
}

// SampleAllSwitches samples every switch once, in catalog order, and returns
// the logical states keyed by switch number.
func (s *Scanner) SampleAllSwitches() (map[int]bool, error) {
	samples := make(map[int]bool, len(s.cat.Switches))
	for _, sw := range s.cat.Switches {
		v, err := s.sample(sw, s.timing.SwitchSettle)
		if err != nil {
			return nil, err
		}
		samples[sw.Number] = v
	}
	return samples, nil
}

// SampleEncoderLines samples the encoder lines in the order enc1.A, enc1.B,
// enc2.A, enc2.B, using the encoder settle time.
func (s *Scanner) SampleEncoderLines() ([2 * panel.NumEncoders]bool, error) {
	var lines [2 * panel.NumEncoders]bool
	for i, sw := range s.cat.EncoderLines() {
		if i >= len(lines) {
			break
		}
		v, err := s.sample(sw, s.timing.EncoderSettle)
		if err != nil {
			return lines, err
		}
		lines[i] = v
	}
	return lines, nil
}

// Reset returns every line to tristate.
func (s *Scanner) Reset() error {
	return s.ctl.ResetAll()
}
