// Package config loads the panel test settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/panel-test/internal/gpio"
)

// EnvPath names the environment variable consulted when no -config flag is given.
const EnvPath = "PANEL_TEST_CONFIG"

// Config is the full set of run settings.
type Config struct {
	Backend string `yaml:"backend"`
	Chip    string `yaml:"chip"`
	Debug   bool   `yaml:"debug,omitempty"`
	Timing  Timing `yaml:"timing"`
	MQTT    MQTT   `yaml:"mqtt"`
	HTTP    string `yaml:"http,omitempty"`
}

// Timing holds the scan waits and loop periods. Values are written as Go
// durations, e.g. "250ms".
type Timing struct {
	LEDPulse        time.Duration `yaml:"led_pulse"`
	SwitchSettle    time.Duration `yaml:"switch_settle"`
	SwitchInterval  time.Duration `yaml:"switch_interval"`
	EncoderSettle   time.Duration `yaml:"encoder_settle"`
	EncoderInterval time.Duration `yaml:"encoder_interval"`
}

// MQTT configures the optional result stream. An empty broker disables it.
type MQTT struct {
	Broker      string `yaml:"broker,omitempty"`
	ClientID    string `yaml:"client_id"`
	TopicPrefix string `yaml:"topic_prefix"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Backend: gpio.BackendCdev,
		Chip:    gpio.DefaultChip,
		Timing: Timing{
			LEDPulse:        250 * time.Millisecond,
			SwitchSettle:    10 * time.Millisecond,
			SwitchInterval:  time.Second,
			EncoderSettle:   0,
			EncoderInterval: 10 * time.Millisecond,
		},
		MQTT: MQTT{
			ClientID:    "panel-test",
			TopicPrefix: "panel/test",
		},
	}
}

// Path returns the config file to load: the flag value if set, else the
// environment variable. Empty means defaults only.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvPath)
}

// Load reads the file at path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the backend name and that no duration is negative.
func (c Config) Validate() error {
	var errs []error
	switch c.Backend {
	case gpio.BackendCdev, gpio.BackendRpio, gpio.BackendSim:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	if c.Backend == gpio.BackendCdev && c.Chip == "" {
		errs = append(errs, errors.New("chip is required for the cdev backend"))
	}

	for _, d := range []struct {
		name string
		v    time.Duration
	}{
		{"led_pulse", c.Timing.LEDPulse},
		{"switch_settle", c.Timing.SwitchSettle},
		{"switch_interval", c.Timing.SwitchInterval},
		{"encoder_settle", c.Timing.EncoderSettle},
		{"encoder_interval", c.Timing.EncoderInterval},
	} {
		if d.v < 0 {
			errs = append(errs, fmt.Errorf("timing.%s is negative (%s)", d.name, d.v))
		}
	}
	if c.Timing.SwitchInterval == 0 || c.Timing.EncoderInterval == 0 {
		errs = append(errs, errors.New("sample intervals must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Topics returns the event and system topics under the configured prefix.
func (m MQTT) Topics() (events, system string) {
	return m.TopicPrefix + "/events", m.TopicPrefix + "/system"
}

// Marshal renders the settings as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
