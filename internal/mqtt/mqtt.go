// Package mqtt streams test results to an MQTT broker.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sweeney/panel-test/internal/logic"
	"github.com/sweeney/panel-test/internal/panel"
)

// Default topics, used when no prefix is configured.
const (
	Topic       = "panel/test/events"
	TopicSystem = "panel/test/system"
)

// Publisher publishes test results.
type Publisher interface {
	// Publish sends one phase result. A failure is logged by the caller and
	// never stops the test.
	Publish(event logic.Event) error

	// PublishSystem sends a lifecycle event.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent is a lifecycle event: STARTUP, PHASE, SHUTDOWN or LWT.
type SystemEvent struct {
	Timestamp time.Time
	Event     string
	Phase     string // phase entered, for PHASE
	Reason    string // e.g. "SIGINT", "error" (SHUTDOWN only)
	Backend   string // GPIO backend in use (STARTUP only)

	// RawPayload, if set, is sent as-is. Used for the final status summary.
	RawPayload []byte
}

// Payload is the JSON body of a result message.
type Payload struct {
	Panel PanelPayload `json:"panel"`
}

// PanelPayload holds one result. Only the fields of its event type are set.
type PanelPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`

	LED   *LEDPayload `json:"led,omitempty"`
	Order string      `json:"order,omitempty"`

	Octal   *OctalPayload `json:"octal,omitempty"`
	Changed []int         `json:"changed,omitempty"`

	Encoder  int   `json:"encoder,omitempty"`
	Counters []int `json:"counters,omitempty"`
}

// LEDPayload identifies a pulsed LED by both coordinate systems.
type LEDPayload struct {
	Number   int    `json:"number"`
	Function string `json:"function"`
	Row      int    `json:"row_gpio"`
	Col      int    `json:"col_gpio"`
	PanelRow int    `json:"panel_row"`
	PanelCol int    `json:"panel_col"`
}

// OctalPayload carries the 18 octal digits, digit 1 first.
type OctalPayload struct {
	Current  []int `json:"current"`
	Previous []int `json:"previous"`
	XOR      []int `json:"xor"`
}

// FormatPayload creates the JSON payload for a result.
func FormatPayload(event logic.Event) ([]byte, error) {
	p := PanelPayload{
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
		Event:     string(event.Type),
	}

	switch event.Type {
	case logic.EventLEDPulse:
		p.LED = ledPayload(event.LED)
		p.Order = event.Order
	case logic.EventSwitches:
		s := event.Switches
		p.Octal = &OctalPayload{
			Current:  s.Current[:],
			Previous: s.Previous[:],
			XOR:      s.XOR[:],
		}
		for n := 1; n <= len(s.XOR); n++ {
			if s.XOR.Digit(n) != 0 {
				p.Changed = append(p.Changed, n)
			}
		}
	case logic.EventEncoder:
		p.Encoder = event.Encoder
		p.Counters = event.Counters[:]
	default:
		return nil, fmt.Errorf("unknown event type %q", event.Type)
	}

	return json.Marshal(Payload{Panel: p})
}

func ledPayload(l panel.LED) *LEDPayload {
	return &LEDPayload{
		Number:   l.Number,
		Function: l.Function,
		Row:      l.Row,
		Col:      l.Col,
		PanelRow: l.PanelRow,
		PanelCol: l.PanelCol,
	}
}

// SystemPayload is the JSON body of a lifecycle message.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the lifecycle event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Phase     string `json:"phase,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Backend   string `json:"backend,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a lifecycle event.
// If event.RawPayload is set, it is returned directly.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Phase:     event.Phase,
			Reason:    event.Reason,
			Backend:   event.Backend,
		},
	}
	return json.Marshal(payload)
}

// NopPublisher discards everything. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(logic.Event) error { return nil }

func (NopPublisher) PublishSystem(SystemEvent) error { return nil }

func (NopPublisher) Close() error { return nil }

func (NopPublisher) IsConnected() bool { return false }
