package modem

import (
	"github.com/openham/ohm/internal/bitio"
	"github.com/openham/ohm/internal/dsp"
)

// fskModem implements the two-tone FSK chain of spec.md §4.4: mark/space
// frequencies, one bit per symbol, noncoherent Goertzel energy detection on
// receive. Tie-break (equal energy at both tones) emits 0.
type fskModem struct{}

func (fskModem) Modulate(data []byte, nbits int, cfg Config) []int16 {
	sps := samplesPerSymbol(cfg.SampleRate, cfg.SymbolRate)
	if sps <= 0 {
		return nil
	}
	rampLen := sps
	gen := dsp.NewToneGenerator(float64(cfg.SampleRate))

	out := make([]float64, rampLen, rampLen+nbits*sps+rampLen)
	r := bitio.NewReader(data, nbits)
	for i := 0; i < nbits; i++ {
		bit, _ := r.ReadBit()
		freq := cfg.SpaceFrequency
		if bit == 1 {
			freq = cfg.MarkFrequency
		}
		out = append(out, gen.Generate(freq, sps)...)
	}
	out = append(out, make([]float64, rampLen)...)

	return quantize(out, rampLen, cfg)
}

func (fskModem) Demodulate(samples []int16, cfg Config) []byte {
	sps := samplesPerSymbol(cfg.SampleRate, cfg.SymbolRate)
	if sps <= 0 {
		return nil
	}
	x := dsp.ToFloat64(samples)
	fsRate := float64(cfg.SampleRate)

	nSym := len(x) / sps
	bits := make([]byte, 0, nSym)
	for i := 0; i < nSym; i++ {
		window := x[i*sps : (i+1)*sps]
		markEnergy := dsp.Goertzel(window, cfg.MarkFrequency, fsRate)
		spaceEnergy := dsp.Goertzel(window, cfg.SpaceFrequency, fsRate)

		var bit byte
		if markEnergy > spaceEnergy {
			bit = 1
		}
		bits = append(bits, bit)
	}

	return bits
}
