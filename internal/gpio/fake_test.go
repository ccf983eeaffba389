package gpio

import (
	"errors"
	"testing"
)

func TestFakeCapabilityConfigure(t *testing.T) {
	f := NewFakeCapability()

	if err := f.Configure(20, ModeOutputHigh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Configure(5, ModeOutputLow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Configure(20, ModeInput); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.Calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", len(f.Calls))
	}
	if f.Calls[1] != (Call{Pin: 5, Mode: ModeOutputLow}) {
		t.Errorf("call 1: got %+v", f.Calls[1])
	}
	if f.Driven() != 1 {
		t.Errorf("driven: got %d, want 1", f.Driven())
	}
	if f.MaxDriven != 2 {
		t.Errorf("max driven: got %d, want 2", f.MaxDriven)
	}
}

func TestFakeCapabilityReadLevels(t *testing.T) {
	f := NewFakeCapability()
	f.Levels[7] = false

	v, err := f.Read(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v {
		t.Error("pin 7: expected low")
	}

	// Unscripted pins read high.
	v, _ = f.Read(8)
	if !v {
		t.Error("pin 8: expected high")
	}
	if f.Reads != 2 {
		t.Errorf("reads: got %d, want 2", f.Reads)
	}
}

func TestFakeCapabilityReadFunc(t *testing.T) {
	f := NewFakeCapability()
	f.ReadFunc = func(pin int, modes map[int]Mode) bool {
		return modes[16] != ModeOutputLow
	}

	v, _ := f.Read(4)
	if !v {
		t.Error("expected high with row undriven")
	}
	f.Configure(16, ModeOutputLow)
	v, _ = f.Read(4)
	if v {
		t.Error("expected low with row driven low")
	}
}

func TestFakeCapabilityErrors(t *testing.T) {
	f := NewFakeCapability()
	f.ConfigureError = errors.New("configure failed")
	f.ReadError = errors.New("read failed")

	if err := f.Configure(1, ModeInput); err == nil || err.Error() != "configure failed" {
		t.Errorf("unexpected configure error: %v", err)
	}
	if _, err := f.Read(1); err == nil || err.Error() != "read failed" {
		t.Errorf("unexpected read error: %v", err)
	}
	if len(f.Calls) != 0 {
		t.Errorf("failed configure should not be recorded, got %d calls", len(f.Calls))
	}
}

func TestFakeCapabilityCloseAndReset(t *testing.T) {
	f := NewFakeCapability()
	f.Configure(4, ModeInputPullUp)
	f.Read(4)

	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}

	f.Reset()
	if f.Closed || len(f.Calls) != 0 || f.Reads != 0 || len(f.NonTristate()) != 0 {
		t.Errorf("reset did not clear state: %s", f)
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeInput, "INPUT"},
		{ModeOutputLow, "OUTPUT_LOW"},
		{ModeOutputHigh, "OUTPUT_HIGH"},
		{ModeInputPullUp, "INPUT_PULLUP"},
		{Mode(9), "Mode(9)"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("%d: got %q, want %q", int(tt.mode), got, tt.want)
		}
	}
}
