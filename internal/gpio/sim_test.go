package gpio

import "testing"

func TestSimCapabilityDeterministicWithSeed(t *testing.T) {
	a := NewSimCapability(42)
	b := NewSimCapability(42)

	for i := 0; i < 32; i++ {
		va, _ := a.Read(4)
		vb, _ := b.Read(4)
		if va != vb {
			t.Fatalf("read %d differs between equal seeds", i)
		}
	}
}

func TestSimCapabilityProducesBothLevels(t *testing.T) {
	s := NewSimCapability(1)
	seen := map[bool]bool{}
	for i := 0; i < 64; i++ {
		v, err := s.Read(5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[v] = true
	}
	if !seen[true] || !seen[false] {
		t.Errorf("expected both levels in 64 reads, got %v", seen)
	}
}

func TestSimCapabilityModes(t *testing.T) {
	s := NewSimCapability(1)
	s.Configure(20, ModeOutputHigh)
	if s.Mode(20) != ModeOutputHigh {
		t.Errorf("mode: got %s, want OUTPUT_HIGH", s.Mode(20))
	}
	s.Close()
	if s.Mode(20) != ModeInput {
		t.Errorf("mode after close: got %s, want INPUT", s.Mode(20))
	}
}

func TestOpenSimAndUnknown(t *testing.T) {
	c, err := Open(BackendSim, DefaultChip, []int{4, 5})
	if err != nil {
		t.Fatalf("sim backend: %v", err)
	}
	if _, ok := c.(*SimCapability); !ok {
		t.Errorf("expected *SimCapability, got %T", c)
	}

	if _, err := Open("bogus", DefaultChip, nil); err == nil {
		t.Error("expected error for unknown backend")
	}
}
