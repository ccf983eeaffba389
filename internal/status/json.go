package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Phase         string       `json:"phase"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	LEDs          LEDsJSON     `json:"leds"`
	Switches      SwitchesJSON `json:"switches"`
	Encoders      EncodersJSON `json:"encoders"`
	Config        ConfigJSON   `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// LEDsJSON summarises LED cycling.
type LEDsJSON struct {
	Pulsed int          `json:"pulsed"`
	Order  string       `json:"order,omitempty"`
	Last   *LastLEDJSON `json:"last,omitempty"`
}

// LastLEDJSON identifies the most recently pulsed LED.
type LastLEDJSON struct {
	Number   int    `json:"number"`
	Function string `json:"function"`
	Row      int    `json:"row_gpio"`
	Col      int    `json:"col_gpio"`
}

// SwitchesJSON holds the latest octal values, digit 1 first.
type SwitchesJSON struct {
	Scans    int   `json:"scans"`
	Current  []int `json:"current"`
	Previous []int `json:"previous"`
	XOR      []int `json:"xor"`
}

// EncodersJSON holds the encoder counters.
type EncodersJSON struct {
	Counters []int `json:"counters"`
	Changes  int   `json:"changes"`
}

// ConfigJSON is the JSON representation of the run settings.
type ConfigJSON struct {
	Backend           string `json:"backend"`
	Chip              string `json:"chip,omitempty"`
	LEDPulseMs        int64  `json:"led_pulse_ms"`
	SwitchIntervalMs  int64  `json:"switch_interval_ms"`
	EncoderIntervalMs int64  `json:"encoder_interval_ms"`
	Broker            string `json:"broker,omitempty"`
	HTTPAddr          string `json:"http_addr,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		Phase:         string(snap.Phase),
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		LEDs: LEDsJSON{
			Pulsed: snap.LEDsPulsed,
			Order:  snap.LEDOrder,
		},
		Switches: SwitchesJSON{
			Scans:    snap.SwitchScans,
			Current:  snap.Switches.Current[:],
			Previous: snap.Switches.Previous[:],
			XOR:      snap.Switches.XOR[:],
		},
		Encoders: EncodersJSON{
			Counters: snap.Encoders[:],
			Changes:  snap.EncoderEmitted,
		},
		Config: ConfigJSON{
			Backend:           snap.Config.Backend,
			Chip:              snap.Config.Chip,
			LEDPulseMs:        snap.Config.LEDPulseMs,
			SwitchIntervalMs:  snap.Config.SwitchIntervalMs,
			EncoderIntervalMs: snap.Config.EncoderIntervalMs,
			Broker:            snap.Config.Broker,
			HTTPAddr:          snap.Config.HTTPAddr,
		},
	}
	if snap.LEDsPulsed > 0 {
		l := snap.LastLED
		inner.LEDs.Last = &LastLEDJSON{Number: l.Number, Function: l.Function, Row: l.Row, Col: l.Col}
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
