package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sweeney/panel-test/internal/logic"
	"github.com/sweeney/panel-test/internal/panel"
)

var ts = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func ledEvent(t *testing.T) logic.Event {
	t.Helper()
	led, ok := panel.PiDP1170().LEDByAddress(22, 11)
	if !ok {
		t.Fatal("LED (22,11) missing from catalog")
	}
	return logic.Event{Timestamp: ts, Type: logic.EventLEDPulse, LED: led, Order: logic.OrderElectronic}
}

func TestFormatPayloadLEDExactJSON(t *testing.T) {
	payload, err := FormatPayload(ledEvent(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `{"panel":{"timestamp":"2026-10-18T09:00:00Z","event":"LED_PULSE",` +
		`"led":{"number":23,"function":"RUN","row_gpio":22,"col_gpio":11,"panel_row":1,"panel_col":3},` +
		`"order":"electronic"}}`
	if string(payload) != expected {
		t.Errorf("unexpected payload:\ngot:  %s\nwant: %s", payload, expected)
	}
}

func TestFormatPayloadEncoderExactJSON(t *testing.T) {
	event := logic.Event{
		Timestamp: ts,
		Type:      logic.EventEncoder,
		Encoder:   2,
		Counters:  [panel.NumEncoders]int{0, 9},
	}

	payload, err := FormatPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `{"panel":{"timestamp":"2026-10-18T09:00:00Z","event":"ENCODER","encoder":2,"counters":[0,9]}}`
	if string(payload) != expected {
		t.Errorf("unexpected payload:\ngot:  %s\nwant: %s", payload, expected)
	}
}

func TestFormatPayloadSwitches(t *testing.T) {
	var cur, prev logic.OctalValues
	cur[4], prev[4] = 7, 3
	cur[16] = 1
	event := logic.Event{
		Timestamp: ts,
		Type:      logic.EventSwitches,
		Switches:  logic.NewSwitchSnapshot(cur, prev),
	}

	payload, err := FormatPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed Payload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	p := parsed.Panel
	if p.Event != "SWITCHES" {
		t.Errorf("event: got %s", p.Event)
	}
	if p.Octal == nil {
		t.Fatal("expected octal block")
	}
	if len(p.Octal.Current) != panel.NumOctalDigits {
		t.Fatalf("current: got %d digits", len(p.Octal.Current))
	}
	if p.Octal.Current[4] != 7 || p.Octal.Previous[4] != 3 || p.Octal.XOR[4] != 4 {
		t.Errorf("digit 5: got %d/%d/%d", p.Octal.Current[4], p.Octal.Previous[4], p.Octal.XOR[4])
	}
	if len(p.Changed) != 2 || p.Changed[0] != 5 || p.Changed[1] != 17 {
		t.Errorf("changed: got %v, want [5 17]", p.Changed)
	}
	if p.LED != nil || p.Counters != nil {
		t.Error("switch payload should not carry LED or encoder fields")
	}
}

func TestFormatPayloadUnknownType(t *testing.T) {
	_, err := FormatPayload(logic.Event{Timestamp: ts, Type: "BOGUS"})
	if err == nil {
		t.Error("expected error for unknown event type")
	}
}

func TestFormatSystemPayloadExactJSON(t *testing.T) {
	tests := []struct {
		name  string
		event SystemEvent
		want  string
	}{
		{
			"startup",
			SystemEvent{Timestamp: ts, Event: "STARTUP", Backend: "sim"},
			`{"system":{"timestamp":"2026-10-18T09:00:00Z","event":"STARTUP","backend":"sim"}}`,
		},
		{
			"phase",
			SystemEvent{Timestamp: ts, Event: "PHASE", Phase: "SWITCHES"},
			`{"system":{"timestamp":"2026-10-18T09:00:00Z","event":"PHASE","phase":"SWITCHES"}}`,
		},
		{
			"shutdown",
			SystemEvent{Timestamp: ts, Event: "SHUTDOWN", Reason: "SIGINT"},
			`{"system":{"timestamp":"2026-10-18T09:00:00Z","event":"SHUTDOWN","reason":"SIGINT"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := FormatSystemPayload(tt.event)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(payload) != tt.want {
				t.Errorf("unexpected payload:\ngot:  %s\nwant: %s", payload, tt.want)
			}
		})
	}
}

func TestFormatSystemPayloadRaw(t *testing.T) {
	raw := []byte(`{"status":{"phase":"SHUTDOWN"}}`)
	payload, err := FormatSystemPayload(SystemEvent{Event: "SHUTDOWN", RawPayload: raw})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != string(raw) {
		t.Errorf("raw payload not passed through: %s", payload)
	}
}

func TestFakePublisher(t *testing.T) {
	f := NewFakePublisher()

	if err := f.Publish(ledEvent(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Events) != 1 || len(f.Payloads) != 1 {
		t.Fatalf("expected 1 event and payload, got %d/%d", len(f.Events), len(f.Payloads))
	}
	if f.Events[0].Type != logic.EventLEDPulse {
		t.Errorf("unexpected event type: %s", f.Events[0].Type)
	}

	if err := f.PublishSystem(SystemEvent{Timestamp: ts, Event: "STARTUP"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.SystemEvents) != 1 || len(f.SystemPayloads) != 1 {
		t.Errorf("expected 1 system event, got %d", len(f.SystemEvents))
	}
}

func TestFakePublisherErrors(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = errors.New("simulated error")
	f.PublishSystemError = errors.New("simulated system error")

	if err := f.Publish(ledEvent(t)); err == nil {
		t.Error("expected error")
	}
	if err := f.PublishSystem(SystemEvent{Event: "STARTUP"}); err == nil {
		t.Error("expected system error")
	}
	if len(f.Events) != 0 || len(f.SystemEvents) != 0 {
		t.Error("nothing should be recorded on error")
	}
}

func TestFakePublisherQueries(t *testing.T) {
	f := NewFakePublisher()
	f.Publish(ledEvent(t))
	f.Publish(logic.Event{Timestamp: ts, Type: logic.EventEncoder, Encoder: 1})
	f.Publish(ledEvent(t))
	f.PublishSystem(SystemEvent{Timestamp: ts, Event: "STARTUP"})
	f.PublishSystem(SystemEvent{Timestamp: ts, Event: "PHASE", Phase: "LEDS"})
	f.PublishSystem(SystemEvent{Timestamp: ts, Event: "PHASE", Phase: "SWITCHES"})

	if n := len(f.OfType(logic.EventLEDPulse)); n != 2 {
		t.Errorf("LED pulses: got %d, want 2", n)
	}
	if n := len(f.OfType(logic.EventSwitches)); n != 0 {
		t.Errorf("switch snapshots: got %d, want 0", n)
	}
	if got := f.Phases(); len(got) != 2 || got[0] != "LEDS" || got[1] != "SWITCHES" {
		t.Errorf("phases: got %v", got)
	}
}

func TestFakePublisherRejectsUnknownType(t *testing.T) {
	f := NewFakePublisher()
	if err := f.Publish(logic.Event{Type: "BOGUS"}); err == nil {
		t.Error("expected format error")
	}
	if len(f.Events) != 0 {
		t.Error("unformattable event should not be recorded")
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.Publish(ledEvent(t)); err != nil {
		t.Errorf("publish: %v", err)
	}
	if err := p.PublishSystem(SystemEvent{Event: "STARTUP"}); err != nil {
		t.Errorf("publish system: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
	if (NopPublisher{}).IsConnected() {
		t.Error("nop publisher is never connected")
	}
}

func TestInterfaces(t *testing.T) {
	var _ Publisher = (*RealPublisher)(nil)
	var _ ConnectionStatus = (*RealPublisher)(nil)
	var _ Publisher = (*FakePublisher)(nil)
	var _ ConnectionStatus = (*FakePublisher)(nil)
	var _ ConnectionStatus = NopPublisher{}
}
