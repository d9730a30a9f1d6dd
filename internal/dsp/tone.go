package dsp

import "math"

// ToneGenerator produces samples of a sine wave while keeping the phase
// accumulator between calls, so that successive calls for different tones
// (FSK mark/space, OFDM subcarriers) remain phase-continuous across symbol
// boundaries the way an analog VCO would.
type ToneGenerator struct {
	sampleRate float64
	phase      float64 // radians, wrapped to [0, 2*pi)
}

// NewToneGenerator creates a generator at the given sample rate with zero
// initial phase.
func NewToneGenerator(sampleRate float64) *ToneGenerator {
	return &ToneGenerator{sampleRate: sampleRate}
}

// Generate appends n samples of a sine wave at freq Hz and unit amplitude,
// advancing (and wrapping) the internal phase accumulator.
func (g *ToneGenerator) Generate(freq float64, n int) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * freq / g.sampleRate
	for i := range out {
		out[i] = math.Sin(g.phase)
		g.phase += step
	}
	g.phase = math.Mod(g.phase, 2*math.Pi)
	if g.phase < 0 {
		g.phase += 2 * math.Pi
	}
	return out
}

// Phase reports the current accumulator value, mostly useful for tests.
func (g *ToneGenerator) Phase() float64 { return g.phase }

// Reset zeros the phase accumulator.
func (g *ToneGenerator) Reset() { g.phase = 0 }

// CosineBurst returns n samples of cos(2*pi*freq*t/sampleRate + phase0),
// a stateless helper used where phase continuity across calls is not
// required (e.g. BPSK's per-symbol carrier, matched-filter references).
func CosineBurst(freq, sampleRate, phase0 float64, n int) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * freq / sampleRate
	for i := range out {
		out[i] = math.Cos(step*float64(i) + phase0)
	}
	return out
}

// SineBurst is the sine counterpart of CosineBurst.
func SineBurst(freq, sampleRate, phase0 float64, n int) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * freq / sampleRate
	for i := range out {
		out[i] = math.Sin(step*float64(i) + phase0)
	}
	return out
}
