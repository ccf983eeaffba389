package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/panel-test/internal/panel"
	"github.com/sweeney/panel-test/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"inc": func(i int) int { return i + 1 },
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="1">
<title>Panel Test</title>
<style>
body { font-family: monospace; max-width: 720px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.digits td, .digits th { width: auto; text-align: center; }
.changed { color: red; font-weight: bold; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Panel Test <span id="phase">{{.Phase}}</span></h1>

<h2>LEDs</h2>
<table>
<tr><th>Pulsed</th><td id="leds-pulsed">{{.LEDsPulsed}}</td></tr>
{{if .LEDsPulsed}}<tr><th>Last</th><td>{{.LastLED.Name}} {{.LastLED.Function}} (row {{.LastLED.Row}}, col {{.LastLED.Col}}, {{.LEDOrder}})</td></tr>{{end}}
</table>

<h2>Switches</h2>
<p>Scans: {{.SwitchScans}}</p>
<table class="digits">
<tr><th>Digit</th>{{range .Digits}}<th title="{{.Function}}">{{.Name}}</th>{{end}}</tr>
<tr><th>Current</th>{{range .Digits}}<td class="{{if .XOR}}changed{{end}}">{{.Current}}</td>{{end}}</tr>
<tr><th>Previous</th>{{range .Digits}}<td>{{.Previous}}</td>{{end}}</tr>
<tr><th>XOR</th>{{range .Digits}}<td>{{.XOR}}</td>{{end}}</tr>
</table>

<h2>Encoders</h2>
<table>
{{range $i, $c := .Encoders}}<tr><th>Encoder {{inc $i}}</th><td>{{$c}}</td></tr>
{{end}}<tr><th>Changes</th><td>{{.EncoderEmitted}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{if .Config.Broker}}{{.Config.Broker}}{{else}}disabled{{end}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Backend</th><td>{{.Config.Backend}}</td></tr>
<tr><th>LED pulse</th><td>{{.Config.LEDPulseMs}}ms</td></tr>
<tr><th>Switch interval</th><td>{{.Config.SwitchIntervalMs}}ms</td></tr>
<tr><th>Encoder interval</th><td>{{.Config.EncoderIntervalMs}}ms</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

// digitView is one column of the octal table.
type digitView struct {
	Name     string
	Function string
	Current  int
	Previous int
	XOR      int
}

func renderHTML(w io.Writer, snap status.Snapshot, cat *panel.Catalog) {
	digits := make([]digitView, 0, len(cat.Digits))
	for _, d := range cat.Digits {
		digits = append(digits, digitView{
			Name:     d.Name,
			Function: d.Function,
			Current:  snap.Switches.Current.Digit(d.Number),
			Previous: snap.Switches.Previous.Digit(d.Number),
			XOR:      snap.Switches.XOR.Digit(d.Number),
		})
	}

	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
		Digits []digitView
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
		Digits:   digits,
	}
	indexTmpl.Execute(w, data)
}
