// Package status provides a thread-safe tracker of the panel test's progress.
// It is written by the phase driver and read by the HTTP handlers.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/panel-test/internal/logic"
	"github.com/sweeney/panel-test/internal/panel"
)

// Phase is the test stage currently running.
type Phase string

const (
	PhaseStartup  Phase = "STARTUP"
	PhaseLEDs     Phase = "LEDS"
	PhaseSwitches Phase = "SWITCHES"
	PhaseEncoders Phase = "ENCODERS"
	PhaseShutdown Phase = "SHUTDOWN"
)

// Config contains run settings for display.
type Config struct {
	Backend           string
	Chip              string
	LEDPulseMs        int64
	SwitchIntervalMs  int64
	EncoderIntervalMs int64
	Broker            string
	HTTPAddr          string
}

// Snapshot is a point-in-time view of the test.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Phase Phase

	LEDsPulsed int
	LastLED    panel.LED // zero until the first pulse
	LEDOrder   string

	SwitchScans int
	Switches    logic.SwitchSnapshot

	Encoders       [panel.NumEncoders]int
	EncoderEmitted int

	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the test started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable test state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker in the STARTUP phase.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Phase:     PhaseStartup,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// SetPhase records the phase being entered.
func (t *Tracker) SetPhase(p Phase) {
	t.mu.Lock()
	t.snap.Phase = p
	t.mu.Unlock()
}

// RecordLED records an LED pulse.
func (t *Tracker) RecordLED(order string, led panel.LED) {
	t.mu.Lock()
	t.snap.LEDsPulsed++
	t.snap.LastLED = led
	t.snap.LEDOrder = order
	t.mu.Unlock()
}

// RecordSwitches records one switch scan.
func (t *Tracker) RecordSwitches(s logic.SwitchSnapshot) {
	t.mu.Lock()
	t.snap.SwitchScans++
	t.snap.Switches = s
	t.mu.Unlock()
}

// RecordEncoders records a counter change.
func (t *Tracker) RecordEncoders(counts [panel.NumEncoders]int) {
	t.mu.Lock()
	t.snap.Encoders = counts
	t.snap.EncoderEmitted++
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the test state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
