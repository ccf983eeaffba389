// Command panel-test exercises every LED and switch of a PiDP-11/70 front
// panel and decodes its two rotary encoders.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/panel-test/internal/config"
	"github.com/sweeney/panel-test/internal/gpio"
	"github.com/sweeney/panel-test/internal/matrix"
	"github.com/sweeney/panel-test/internal/mqtt"
	"github.com/sweeney/panel-test/internal/panel"
	"github.com/sweeney/panel-test/internal/report"
	"github.com/sweeney/panel-test/internal/status"
	"github.com/sweeney/panel-test/internal/web"
)

const helpText = `panel-test: stand-alone test of the LEDs, switches and rotary encoders of a PiDP-11/70 front panel.

The test runs in three phases:
  1. every LED is pulsed, first by electronic row and column, then by panel position;
  2. the switches are read once a second and shown as octal digits (^C moves on);
  3. the rotary encoders are decoded into two counters (^C ends the test).

Maximise the terminal window before starting. Stop the simh client and the
blinkenlight server first: they drive the same GPIO lines.

Options:
`

func main() {
	var debug bool
	flag.BoolVar(&debug, "d", false, "Run with I/O simulated and debug data displayed")
	flag.BoolVar(&debug, "debug", false, "Same as -d")
	configPath := flag.String("config", "", "YAML config file (default $"+config.EnvPath+")")
	backend := flag.String("backend", gpio.BackendCdev, "GPIO backend: cdev, rpio or sim")
	chip := flag.String("chip", gpio.DefaultChip, "GPIO chip for the cdev backend")
	broker := flag.String("broker", "", "MQTT broker address for the result stream (empty to disable)")
	httpAddr := flag.String("http", "", "HTTP live view address, e.g. :8080 (empty to disable)")

	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), helpText)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}

	// Flags given on the command line win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = *backend
		case "chip":
			cfg.Chip = *chip
		case "broker":
			cfg.MQTT.Broker = *broker
		case "http":
			cfg.HTTP = *httpAddr
		}
	})
	if debug {
		cfg.Debug = true
		cfg.Backend = gpio.BackendSim
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if err := run(cfg, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg config.Config, stdin io.Reader, stdout io.Writer) error {
	cat := panel.PiDP1170()
	if err := cat.Validate(); err != nil {
		return err
	}

	capability, err := gpio.Open(cfg.Backend, cfg.Chip, cat.Layout.Pins())
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer capability.Close()

	sleep := matrix.Sleeper(time.Sleep)
	if sim, ok := capability.(*gpio.SimCapability); ok {
		sim.Verbose = cfg.Debug
		sleep = matrix.LogWait
	}

	timing := matrix.Timing{
		LEDPulse:      cfg.Timing.LEDPulse,
		SwitchSettle:  cfg.Timing.SwitchSettle,
		EncoderSettle: cfg.Timing.EncoderSettle,
	}
	scanner := matrix.NewScanner(matrix.NewController(capability, cat.Layout), cat, timing, sleep)
	if err := scanner.Reset(); err != nil {
		return fmt.Errorf("reset matrix: %w", err)
	}

	rep := report.New(stdout, cat)
	if cfg.Debug {
		if data, err := cfg.Marshal(); err == nil {
			log.Printf("config:\n%s", data)
		}
		rep.ConfigEcho()
	}

	var publisher mqtt.Publisher = mqtt.NopPublisher{}
	var mqttStatus mqtt.ConnectionStatus = mqtt.NopPublisher{}
	if cfg.MQTT.Broker != "" {
		topic, systemTopic := cfg.MQTT.Topics()
		p, err := mqtt.NewRealPublisher(cfg.MQTT.Broker, cfg.MQTT.ClientID, topic, systemTopic)
		if err != nil {
			log.Printf("mqtt: %v; results will not be published", err)
		} else {
			publisher, mqttStatus = p, p
		}
	}
	defer publisher.Close()

	tracker := status.NewTracker(time.Now(), status.Config{
		Backend:           cfg.Backend,
		Chip:              cfg.Chip,
		LEDPulseMs:        cfg.Timing.LEDPulse.Milliseconds(),
		SwitchIntervalMs:  cfg.Timing.SwitchInterval.Milliseconds(),
		EncoderIntervalMs: cfg.Timing.EncoderInterval.Milliseconds(),
		Broker:            cfg.MQTT.Broker,
		HTTPAddr:          cfg.HTTP,
	})

	if cfg.HTTP != "" {
		srv := web.New(cfg.HTTP, tracker, cat)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http live view listening on %s", cfg.HTTP)
	}

	if err := publisher.PublishSystem(mqtt.SystemEvent{
		Timestamp: time.Now(),
		Event:     "STARTUP",
		Backend:   cfg.Backend,
	}); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	}

	log.Printf("started: backend=%s led_pulse=%v switch_interval=%v encoder_interval=%v",
		cfg.Backend, cfg.Timing.LEDPulse, cfg.Timing.SwitchInterval, cfg.Timing.EncoderInterval)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	switchTicker := time.NewTicker(cfg.Timing.SwitchInterval)
	defer switchTicker.Stop()
	encoderTicker := time.NewTicker(cfg.Timing.EncoderInterval)
	defer encoderTicker.Stop()

	d := &driver{
		scanner: scanner,
		cat:     cat,
		rep:     rep,
		pub:     publisher,
		conn:    mqttStatus,
		tracker: tracker,
		now:     time.Now,
		debug:   cfg.Debug,
	}

	reason, runErr := d.runPhases(readLines(stdin), sigCh, switchTicker.C, encoderTicker.C)
	d.shutdown(reason)

	if err := scanner.Reset(); err != nil && runErr == nil {
		runErr = fmt.Errorf("reset matrix: %w", err)
	}
	return runErr
}

// readLines delivers each line of r on the returned channel, which is closed
// at end of input.
func readLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()
	return lines
}
