package main

import (
	"log"
	"os"
	"syscall"
	"time"

	"github.com/sweeney/panel-test/internal/logic"
	"github.com/sweeney/panel-test/internal/matrix"
	"github.com/sweeney/panel-test/internal/mqtt"
	"github.com/sweeney/panel-test/internal/panel"
	"github.com/sweeney/panel-test/internal/report"
	"github.com/sweeney/panel-test/internal/status"
)

const (
	promptSwitches = "Press enter to test switches (^C stops test)"
	promptEncoders = "Press enter to test rotary encoders (^C stops test)"
)

// reasonError is the shutdown reason when a hardware error ends the run.
const reasonError = "ERROR"

// driver runs the test phases. All GPIO work happens on the caller's
// goroutine; signals and ticks arrive on channels so tests can inject them.
type driver struct {
	scanner *matrix.Scanner
	cat     *panel.Catalog
	rep     *report.Reporter
	pub     mqtt.Publisher
	conn    mqtt.ConnectionStatus
	tracker *status.Tracker
	now     func() time.Time
	debug   bool
}

// runPhases runs LED cycling, the switch test and the encoder test in turn.
// SIGINT ends the current phase and moves on; SIGTERM, or SIGINT during the
// encoder test, ends the run. It returns the shutdown reason.
func (d *driver) runPhases(lines <-chan string, sig <-chan os.Signal, switchTick, encoderTick <-chan time.Time) (string, error) {
	s, err := d.ledPhase(sig)
	if err != nil {
		return reasonError, err
	}
	if s == syscall.SIGTERM {
		return signalName(s), nil
	}

	if s = d.prompt(promptSwitches, lines, sig); s == nil {
		s, err = d.switchPhase(switchTick, sig)
		if err != nil {
			return reasonError, err
		}
	}
	if s == syscall.SIGTERM {
		return signalName(s), nil
	}

	if s = d.prompt(promptEncoders, lines, sig); s != nil {
		return signalName(s), nil
	}
	s, err = d.encoderPhase(encoderTick, sig)
	if err != nil {
		return reasonError, err
	}
	return signalName(s), nil
}

// prompt waits for the operator to press enter. End of input counts as
// enter. It returns the signal if one arrives first.
func (d *driver) prompt(msg string, lines <-chan string, sig <-chan os.Signal) os.Signal {
	d.rep.Clear()
	d.rep.Prompt(msg)
	select {
	case <-lines:
	case s := <-sig:
		d.rep.Blank()
		log.Printf("received %v at prompt, skipping", s)
		return s
	}
	d.rep.Clear()
	return nil
}

func (d *driver) enter(p status.Phase) {
	d.tracker.SetPhase(p)
	d.syncMQTT()
	if err := d.pub.PublishSystem(mqtt.SystemEvent{
		Timestamp: d.now(),
		Event:     "PHASE",
		Phase:     string(p),
	}); err != nil {
		log.Printf("failed to publish phase event: %v", err)
	}
}

// ledPhase pulses every LED by electronic address, then by panel position.
func (d *driver) ledPhase(sig <-chan os.Signal) (os.Signal, error) {
	d.enter(status.PhaseLEDs)
	for _, order := range []string{logic.OrderElectronic, logic.OrderPhysical} {
		s, err := d.cycleLEDs(order, sig)
		if s != nil || err != nil {
			return s, err
		}
	}
	return nil, nil
}

func (d *driver) cycleLEDs(order string, sig <-chan os.Signal) (os.Signal, error) {
	leds := d.cat.ElectronicOrder()
	group := func(l panel.LED) int { return l.Row }
	if order == logic.OrderPhysical {
		leds = d.cat.PhysicalOrder()
		group = func(l panel.LED) int { return l.PanelRow }
	}

	d.rep.LEDHeader(order)
	for i, led := range leds {
		select {
		case s := <-sig:
			log.Printf("received %v, ending LED cycling", s)
			return s, nil
		default:
		}

		if i > 0 && group(led) != group(leds[i-1]) {
			d.rep.Blank()
		}
		d.rep.LEDLine(order, led)
		if _, err := d.scanner.Pulse(led.Row, led.Col); err != nil {
			return nil, err
		}
		d.tracker.RecordLED(order, led)
		d.publish(logic.Event{Timestamp: d.now(), Type: logic.EventLEDPulse, LED: led, Order: order})
	}
	d.rep.Blank()
	return nil, nil
}

// switchPhase shows the octal switch values on every tick until a signal.
func (d *driver) switchPhase(tick <-chan time.Time, sig <-chan os.Signal) (os.Signal, error) {
	d.enter(status.PhaseSwitches)

	samples, err := d.scanner.SampleAllSwitches()
	if err != nil {
		return nil, err
	}
	if d.debug {
		d.rep.SwitchValues(samples)
		d.rep.Blank()
	}
	current := logic.Aggregate(d.cat.Switches, samples)

	for scan := 0; ; scan++ {
		samples, err := d.scanner.SampleAllSwitches()
		if err != nil {
			return nil, err
		}
		previous := current
		current = logic.Aggregate(d.cat.Switches, samples)
		snap := logic.NewSwitchSnapshot(current, previous)

		d.rep.Clear()
		if d.debug {
			d.rep.OctalsSimple(snap)
		}
		d.rep.OctalsFancy(snap)

		d.tracker.RecordSwitches(snap)
		if scan == 0 || snap.Changed() {
			d.publish(logic.Event{Timestamp: d.now(), Type: logic.EventSwitches, Switches: snap})
		}

		select {
		case s := <-sig:
			log.Printf("received %v, ending switch test", s)
			return s, nil
		case <-tick:
		}
	}
}

// encoderPhase decodes the encoders on every tick until a signal, printing
// the counters each time one changes.
func (d *driver) encoderPhase(tick <-chan time.Time, sig <-chan os.Signal) (os.Signal, error) {
	d.enter(status.PhaseEncoders)
	d.rep.EncoderHeader()

	bank := logic.NewEncoderBank()
	lines, err := d.scanner.SampleEncoderLines()
	if err != nil {
		return nil, err
	}
	bank.Process(lines)

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, ending encoder test", s)
			return s, nil
		case <-tick:
		}

		lines, err := d.scanner.SampleEncoderLines()
		if err != nil {
			return nil, err
		}
		counts, emitted := bank.Process(lines)
		if emitted == [panel.NumEncoders]bool{} {
			continue
		}
		d.rep.EncoderCounts(counts)
		d.tracker.RecordEncoders(counts)
		for i, e := range emitted {
			if e {
				d.publish(logic.Event{Timestamp: d.now(), Type: logic.EventEncoder, Counters: counts, Encoder: i + 1})
			}
		}
	}
}

// shutdown records the end of the run and publishes the final status.
func (d *driver) shutdown(reason string) {
	d.tracker.SetPhase(status.PhaseShutdown)
	d.syncMQTT()
	snap := d.tracker.Snapshot()
	event := mqtt.SystemEvent{
		Timestamp:  d.now(),
		Event:      "SHUTDOWN",
		Reason:     reason,
		RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", reason),
	}
	if err := d.pub.PublishSystem(event); err != nil {
		log.Printf("failed to publish shutdown event: %v", err)
	} else {
		log.Printf("shutdown: %s", reason)
	}
}

func (d *driver) publish(event logic.Event) {
	if err := d.pub.Publish(event); err != nil {
		log.Printf("publish error: %v", err)
		// Don't stop the test on publish failure
	}
}

func (d *driver) syncMQTT() {
	if d.conn != nil {
		d.tracker.SetMQTTConnected(d.conn.IsConnected())
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}
