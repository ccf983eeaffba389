package logic

import "github.com/sweeney/panel-test/internal/panel"

// Aggregate reduces a switch sample set to per-digit octal values. Each
// switch whose logical sample is true adds its weight to its digit.
//
// The result is always freshly zeroed: a call never depends on earlier
// calls or on the caller clearing anything first. Switches absent from
// samples count as open.
func Aggregate(switches []panel.Switch, samples map[int]bool) OctalValues {
	var v OctalValues
	for _, s := range switches {
		if !samples[s.Number] {
			continue
		}
		if s.Digit < 1 || s.Digit > len(v) {
			continue
		}
		v[s.Digit-1] += s.Weight
	}
	return v
}

// Delta returns the bitwise XOR of each digit pair. A nonzero entry marks a
// digit that changed.
func Delta(a, b OctalValues) OctalValues {
	var x OctalValues
	for i := range x {
		x[i] = a[i] ^ b[i]
	}
	return x
}
