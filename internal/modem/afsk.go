package modem

import (
	"github.com/openham/ohm/internal/bitio"
	"github.com/openham/ohm/internal/dsp"
)

// afskModem implements the profile-selected AFSK chain of spec.md §4.4:
// one of four fixed (mark, space, baud) tone pairs, keyed by
// cfg.AFSKProfileName, with the same noncoherent energy detector as
// fskModem. The profile supplies its own baud rate, overriding
// cfg.SymbolRate.
type afskModem struct{}

func (afskModem) Modulate(data []byte, nbits int, cfg Config) []int16 {
	mark, space, baud, err := afskTones(cfg.AFSKProfileName)
	if err != nil {
		return nil
	}
	sps := samplesPerSymbol(cfg.SampleRate, baud)
	if sps <= 0 {
		return nil
	}
	rampLen := sps
	gen := dsp.NewToneGenerator(float64(cfg.SampleRate))

	out := make([]float64, rampLen, rampLen+nbits*sps+rampLen)
	r := bitio.NewReader(data, nbits)
	for i := 0; i < nbits; i++ {
		bit, _ := r.ReadBit()
		freq := space
		if bit == 1 {
			freq = mark
		}
		out = append(out, gen.Generate(freq, sps)...)
	}
	out = append(out, make([]float64, rampLen)...)

	return quantize(out, rampLen, cfg)
}

func (afskModem) Demodulate(samples []int16, cfg Config) []byte {
	mark, space, baud, err := afskTones(cfg.AFSKProfileName)
	if err != nil {
		return nil
	}
	sps := samplesPerSymbol(cfg.SampleRate, baud)
	if sps <= 0 {
		return nil
	}
	x := dsp.ToFloat64(samples)
	fsRate := float64(cfg.SampleRate)

	nSym := len(x) / sps
	bits := make([]byte, 0, nSym)
	for i := 0; i < nSym; i++ {
		window := x[i*sps : (i+1)*sps]
		markEnergy := dsp.Goertzel(window, mark, fsRate)
		spaceEnergy := dsp.Goertzel(window, space, fsRate)

		var bit byte
		if markEnergy > spaceEnergy {
			bit = 1
		}
		bits = append(bits, bit)
	}

	return bits
}
