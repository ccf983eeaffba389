package mqtt

import (
	"github.com/sweeney/panel-test/internal/logic"
)

// FakePublisher records everything a test run publishes, formatted exactly
// as RealPublisher would send it.
type FakePublisher struct {
	Events   []logic.Event
	Payloads [][]byte

	SystemEvents   []SystemEvent
	SystemPayloads [][]byte

	// Errors returned instead of recording, when set.
	PublishError       error
	PublishSystemError error

	Closed    bool
	Connected bool // returned by IsConnected
}

// NewFakePublisher creates an empty FakePublisher.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// Publish formats and records a phase result.
func (f *FakePublisher) Publish(event logic.Event) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	payload, err := FormatPayload(event)
	if err != nil {
		return err
	}
	f.Events = append(f.Events, event)
	f.Payloads = append(f.Payloads, payload)
	return nil
}

// PublishSystem formats and records a lifecycle event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemEvents = append(f.SystemEvents, event)
	f.SystemPayloads = append(f.SystemPayloads, payload)
	return nil
}

// Close marks the publisher closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// IsConnected returns the Connected field.
func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}

// OfType returns the recorded results of one event type, in publish order.
func (f *FakePublisher) OfType(t logic.EventType) []logic.Event {
	var out []logic.Event
	for _, e := range f.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Phases returns the phases announced by PHASE events, in order.
func (f *FakePublisher) Phases() []string {
	var out []string
	for _, e := range f.SystemEvents {
		if e.Event == "PHASE" {
			out = append(out, e.Phase)
		}
	}
	return out
}
