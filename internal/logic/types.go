// Package logic contains the pure decoding logic of the panel test: octal
// aggregation of switch samples and quadrature decoding of the encoders.
// This package has NO hardware dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Decoders are fed sample values only; events carry the timestamp the caller
// supplies.
package logic

import (
	"time"

	"github.com/sweeney/panel-test/internal/panel"
)

// OctalValues holds one value (0..7) per octal digit. Digit n lives at
// index n-1; use Digit to address it by number.
type OctalValues [panel.NumOctalDigits]int

// Digit returns the value of digit number n (1-based). Out of range is 0.
func (v OctalValues) Digit(n int) int {
	if n < 1 || n > len(v) {
		return 0
	}
	return v[n-1]
}

// SwitchSnapshot is one refresh of the switch test: the current and previous
// octal values and their XOR.
type SwitchSnapshot struct {
	Current  OctalValues
	Previous OctalValues
	XOR      OctalValues
}

// NewSwitchSnapshot builds a snapshot, computing the XOR of the two arrays.
func NewSwitchSnapshot(current, previous OctalValues) SwitchSnapshot {
	return SwitchSnapshot{
		Current:  current,
		Previous: previous,
		XOR:      Delta(current, previous),
	}
}

// Changed reports whether any digit differs from the previous snapshot.
func (s SwitchSnapshot) Changed() bool {
	return s.XOR != OctalValues{}
}

// EventType identifies what a published result describes.
type EventType string

const (
	EventLEDPulse EventType = "LED_PULSE"
	EventSwitches EventType = "SWITCHES"
	EventEncoder  EventType = "ENCODER"
)

// LED scan orders.
const (
	OrderElectronic = "electronic"
	OrderPhysical   = "physical"
)

// Event is one result of a test phase, to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType

	// Set for EventLEDPulse.
	LED   panel.LED
	Order string // OrderElectronic or OrderPhysical

	// Set for EventSwitches.
	Switches SwitchSnapshot

	// Set for EventEncoder.
	Counters [panel.NumEncoders]int
	Encoder  int // 1-based index of the encoder that emitted
}
