package modem

import "github.com/openham/ohm/internal/dsp"

// Modem is the two-operation contract every modulation scheme implements,
// per spec.md §4.4 and the dispatch-table design note in §9.
//
// data holds nbits valid bits, MSB-first (see internal/bitio). Demodulate
// returns one byte per recovered bit (0 or 1), matching the raw
// representation internal/frame.Parse scans for SYNC.
type Modem interface {
	Modulate(data []byte, nbits int, cfg Config) []int16
	Demodulate(samples []int16, cfg Config) []byte
}

// dispatch is the closed table of the four modes, per spec.md §9.
var dispatch = map[Name]Modem{
	BPSK: bpskModem{},
	FSK:  fskModem{},
	AFSK: afskModem{},
	OFDM: ofdmModem{},
}

// AutoDetectOrder is the fixed try-order auto-detect walks, per spec.md
// §4.5/§9: cheapest demodulator first. Changing this order changes
// observable behavior, so it is pinned here rather than derived from the
// dispatch map's (unordered) iteration.
var AutoDetectOrder = []Name{BPSK, FSK, AFSK, OFDM}

// Get resolves a modulation name to its Modem, or ErrInvalidConfiguration
// if name is not one of the four recognized schemes.
func Get(name Name) (Modem, error) {
	m, ok := dispatch[name]
	if !ok {
		return nil, &ErrInvalidConfiguration{Reason: "unknown modulation " + string(name)}
	}
	return m, nil
}

// applyRamp tapers the amplitude of the first and last rampLen samples of
// real signal content linearly from (to) zero, modeling the "ramp-up/
// ramp-down padding of bounded length" of spec.md §3. samples must already
// have rampLen samples of zero-valued silence headroom prepended and
// appended by the caller (quantize's callers all build their buffers this
// way): the taper spans the padding/signal boundary at indices
// [rampLen, 2*rampLen) and [n-2*rampLen, n-rampLen), so it is the first and
// last rampLen *real* samples that rise from and fall to zero, rather than
// the already-silent padding either side of them.
func applyRamp(samples []float64, rampLen int) {
	n := len(samples)
	if rampLen <= 0 || rampLen*4 > n {
		return
	}
	for i := 0; i < rampLen; i++ {
		frac := float64(i) / float64(rampLen)
		samples[rampLen+i] *= frac
		samples[n-1-rampLen-i] *= frac
	}
}

// quantize is the shared final step: scale, ramp, and saturate to int16.
func quantize(samples []float64, rampLen int, cfg Config) []int16 {
	applyRamp(samples, rampLen)
	scale := cfg.PowerScale
	if scale <= 0 {
		scale = 1
	}
	return dsp.QuantizeInt16(samples, scale)
}
