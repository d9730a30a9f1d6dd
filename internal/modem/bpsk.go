package modem

import (
	"math"

	"github.com/openham/ohm/internal/bitio"
	"github.com/openham/ohm/internal/dsp"
)

// bpskModem implements the BPSK chain of spec.md §4.4: one bit per symbol,
// phases {0, pi} on a fixed carrier, root-raised-cosine pulse shaping on
// transmit and a matched root-raised-cosine filter on receive (spec.md
// §4.1/§4.4's "share: root-raised-cosine pulse shaping where applicable"),
// followed by a coherent correlator whose reference phase is tracked by a
// small Costas-style loop and a hard slicer.
//
// Shaping the transmitted impulse train with an RRC filter and matching it
// with an identical RRC filter on receive is the standard Nyquist-pulse
// construction: the cascade of the two is (ideally) a raised-cosine
// response, which is zero at every nonzero symbol-spaced lag, so sampling
// the matched-filter output once per symbol recovers each bit free of
// intersymbol interference from its neighbors.
type bpskModem struct{}

const (
	bpskLoopGain   = 0.02
	bpskRolloff    = 0.35 // spec.md §4.1's pulse-shaper roll-off
	bpskFilterSpan = 3    // symbols either side of the pulse's peak
)

func (bpskModem) Modulate(data []byte, nbits int, cfg Config) []int16 {
	sps := samplesPerSymbol(cfg.SampleRate, cfg.SymbolRate)
	if sps <= 0 {
		return nil
	}
	rampLen := sps

	// One impulse per symbol, at its start; RootRaisedCosine's odd-length,
	// centered taps and ConvolveSame's centered trim keep that same index
	// as the shaped pulse's peak, so Demodulate can sample at i*sps too.
	impulses := make([]float64, nbits*sps)
	r := bitio.NewReader(data, nbits)
	for i := 0; i < nbits; i++ {
		bit, _ := r.ReadBit()
		sign := -1.0
		if bit == 1 {
			sign = 1.0
		}
		impulses[i*sps] = sign
	}

	taps := dsp.RootRaisedCosine(bpskRolloff, bpskFilterSpan, sps)
	shaped := dsp.ConvolveSame(impulses, taps)

	total := len(shaped) + 2*rampLen
	out := make([]float64, total)
	carrier := dsp.CosineBurst(cfg.CenterFrequency, float64(cfg.SampleRate), 0, len(shaped))
	for i, v := range shaped {
		out[rampLen+i] = v * carrier[i]
	}

	return quantize(out, rampLen, cfg)
}

func (bpskModem) Demodulate(samples []int16, cfg Config) []byte {
	sps := samplesPerSymbol(cfg.SampleRate, cfg.SymbolRate)
	if sps <= 0 {
		return nil
	}
	x := dsp.ToFloat64(samples)
	fc := cfg.CenterFrequency
	fsRate := float64(cfg.SampleRate)

	// Coherent downconversion to baseband I/Q, then the matched RRC
	// filter shared with Modulate's pulse shaper.
	cosRef := dsp.CosineBurst(fc, fsRate, 0, len(x))
	sinRef := dsp.SineBurst(fc, fsRate, 0, len(x))
	baseI := make([]float64, len(x))
	baseQ := make([]float64, len(x))
	for i, v := range x {
		baseI[i] = v * cosRef[i]
		baseQ[i] = v * sinRef[i]
	}

	taps := dsp.RootRaisedCosine(bpskRolloff, bpskFilterSpan, sps)
	matchedI := dsp.ConvolveSame(baseI, taps)
	matchedQ := dsp.ConvolveSame(baseQ, taps)

	nSym := len(x) / sps
	bits := make([]byte, 0, nSym)
	phase := 0.0 // Costas-tracked residual carrier phase, radians

	for i := 0; i < nSym; i++ {
		idx := i * sps
		iVal, qVal := matchedI[idx], matchedQ[idx]

		// Rotate the matched-filter sample by the loop's current phase
		// estimate before slicing; with the default configuration the
		// carrier completes a whole number of cycles per symbol, so the
		// rotation stays near identity and the loop merely holds lock.
		cosP, sinP := math.Cos(phase), math.Sin(phase)
		rotI := iVal*cosP + qVal*sinP
		rotQ := -iVal*sinP + qVal*cosP

		var bit byte
		if rotI > 0 {
			bit = 1
		}
		bits = append(bits, bit)

		phase += bpskLoopGain * rotI * rotQ
	}

	return bits
}
