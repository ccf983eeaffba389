package gpio

import "fmt"

// Call is one recorded Configure call.
type Call struct {
	Pin  int
	Mode Mode
}

// FakeCapability is a test double that records configuration and returns
// scripted levels.
type FakeCapability struct {
	// Calls contains every Configure call in order.
	Calls []Call

	// Modes holds the current mode of each configured line.
	Modes map[int]Mode

	// Levels contains the raw level returned by Read for each pin.
	// Pins not present read high (the pull-up level).
	Levels map[int]bool

	// ReadFunc, if set, overrides Levels. It sees the current line modes,
	// so a test can model the matrix wiring.
	ReadFunc func(pin int, modes map[int]Mode) bool

	// Reads counts Read calls.
	Reads int

	// MaxDriven is the highest number of simultaneously driven lines seen.
	MaxDriven int

	// ConfigureError and ReadError, if set, are returned by those methods.
	ConfigureError error
	ReadError      error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeCapability creates an empty FakeCapability.
func NewFakeCapability() *FakeCapability {
	return &FakeCapability{
		Modes:  make(map[int]Mode),
		Levels: make(map[int]bool),
	}
}

// Configure records the call and tracks how many lines are driven.
func (f *FakeCapability) Configure(pin int, mode Mode) error {
	if f.ConfigureError != nil {
		return f.ConfigureError
	}
	if f.Modes == nil {
		f.Modes = make(map[int]Mode)
	}
	f.Calls = append(f.Calls, Call{Pin: pin, Mode: mode})
	f.Modes[pin] = mode
	if n := f.Driven(); n > f.MaxDriven {
		f.MaxDriven = n
	}
	return nil
}

// Read returns the scripted level of a pin.
func (f *FakeCapability) Read(pin int) (bool, error) {
	f.Reads++
	if f.ReadError != nil {
		return false, f.ReadError
	}
	if f.ReadFunc != nil {
		return f.ReadFunc(pin, f.Modes), nil
	}
	if v, ok := f.Levels[pin]; ok {
		return v, nil
	}
	return true, nil
}

// Close marks the capability as closed.
func (f *FakeCapability) Close() error {
	f.Closed = true
	return nil
}

// Driven returns the number of lines currently driven high or low.
func (f *FakeCapability) Driven() int {
	n := 0
	for _, m := range f.Modes {
		if m.Driven() {
			n++
		}
	}
	return n
}

// NonTristate returns the pins not currently in ModeInput.
func (f *FakeCapability) NonTristate() []int {
	var pins []int
	for pin, m := range f.Modes {
		if m != ModeInput {
			pins = append(pins, pin)
		}
	}
	return pins
}

// Reset clears recorded calls and state.
func (f *FakeCapability) Reset() {
	f.Calls = nil
	f.Modes = make(map[int]Mode)
	f.Reads = 0
	f.MaxDriven = 0
	f.Closed = false
}

// String summarises the recorded calls, for test failure messages.
func (f *FakeCapability) String() string {
	return fmt.Sprintf("FakeCapability{calls=%d driven=%d maxDriven=%d}", len(f.Calls), f.Driven(), f.MaxDriven)
}
