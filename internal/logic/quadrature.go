package logic

import "github.com/sweeney/panel-test/internal/panel"

// CounterModulus bounds the encoder counters to 0..9.
const CounterModulus = 10

// Direction is the sense an encoder committed to when it left its last detent.
type Direction int

const (
	DirectionNone Direction = 0
	DirectionUp   Direction = 1
	DirectionDown Direction = -1
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "UP"
	case DirectionDown:
		return "DOWN"
	}
	return "NONE"
}

// Decoder turns a stream of (A,B) samples from one mechanical quadrature
// encoder into a wrap-around counter, counting once per detent-to-detent
// rotation.
//
// The detent is A=B=true. Up:   TT, TF, FF, FT, TT.
// Down: TT, FT, FF, TF, TT.
// Direction is latched when leaving a detent and consumed when arriving at the
// next one; a return to the same detent is absorbed as bounce. Intermediate
// Gray-code states are ignored.
type Decoder struct {
	count  int
	dir    Direction
	prevA  bool
	prevB  bool
	seeded bool
}

// NewDecoder creates a decoder with counter 0 and no direction.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Count returns the current counter value (0..9).
func (d *Decoder) Count() int {
	return d.count
}

// Direction returns the currently latched direction.
func (d *Decoder) Direction() Direction {
	return d.dir
}

// Step processes one (A,B) sample. It returns the counter and whether this
// sample completed a rotation. The first sample only seeds the decoder.
func (d *Decoder) Step(a, b bool) (int, bool) {
	if !d.seeded {
		d.prevA, d.prevB = a, b
		d.seeded = true
		return d.count, false
	}

	prevA, prevB := d.prevA, d.prevB
	d.prevA, d.prevB = a, b

	if a == prevA && b == prevB {
		return d.count, false
	}

	switch {
	case a && b:
		// Arriving at a detent.
		switch {
		case !prevA && d.dir == DirectionUp:
			d.count = (d.count + 1) % CounterModulus
			d.dir = DirectionNone
			return d.count, true
		case !prevB && d.dir == DirectionDown:
			d.count = (d.count - 1 + CounterModulus) % CounterModulus
			d.dir = DirectionNone
			return d.count, true
		default:
			d.dir = DirectionNone
		}
	case a && !b && prevB:
		d.dir = DirectionUp
	case !a && b && prevA:
		d.dir = DirectionDown
	}
	return d.count, false
}

// EncoderBank decodes both panel encoders from the 4-line sample order
// enc1.A, enc1.B, enc2.A, enc2.B. Each encoder keeps its own direction.
type EncoderBank struct {
	decoders [panel.NumEncoders]*Decoder
}

// NewEncoderBank creates a bank with all counters at 0.
func NewEncoderBank() *EncoderBank {
	b := &EncoderBank{}
	for i := range b.decoders {
		b.decoders[i] = NewDecoder()
	}
	return b
}

// Process feeds one sample of all encoder lines. It returns the counters and,
// per encoder, whether it emitted a count on this sample.
func (b *EncoderBank) Process(lines [2 * panel.NumEncoders]bool) (counts [panel.NumEncoders]int, emitted [panel.NumEncoders]bool) {
	for i, d := range b.decoders {
		counts[i], emitted[i] = d.Step(lines[2*i], lines[2*i+1])
	}
	return counts, emitted
}

// Counts returns the current counters.
func (b *EncoderBank) Counts() [panel.NumEncoders]int {
	var counts [panel.NumEncoders]int
	for i, d := range b.decoders {
		counts[i] = d.Count()
	}
	return counts
}
