package gpio

import (
	"log"
	"math/rand"
)

// SimCapability stands in for hardware: configuration is accepted (and
// optionally logged) and every read returns a pseudo-random level.
type SimCapability struct {
	// Verbose logs every Configure call.
	Verbose bool

	rnd   *rand.Rand
	modes map[int]Mode
}

// NewSimCapability creates a simulated capability with the given random seed.
func NewSimCapability(seed int64) *SimCapability {
	return &SimCapability{
		rnd:   rand.New(rand.NewSource(seed)),
		modes: make(map[int]Mode),
	}
}

// Configure records the mode of a line.
func (s *SimCapability) Configure(pin int, mode Mode) error {
	if s.Verbose {
		log.Printf("gpio: sim pin %d -> %s", pin, mode)
	}
	s.modes[pin] = mode
	return nil
}

// Read returns a pseudo-random level.
func (s *SimCapability) Read(pin int) (bool, error) {
	return s.rnd.Intn(2) == 1, nil
}

// Mode returns the last mode configured on a line (ModeInput if never set).
func (s *SimCapability) Mode(pin int) Mode {
	return s.modes[pin]
}

// Close returns every line to tristate.
func (s *SimCapability) Close() error {
	for pin := range s.modes {
		s.modes[pin] = ModeInput
	}
	return nil
}
