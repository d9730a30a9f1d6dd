package modem

import (
	"github.com/openham/ohm/internal/bitio"
	"github.com/openham/ohm/internal/dsp"
)

// ofdmModem implements the 64-subcarrier OFDM chain of spec.md §4.4. Each
// block is one cyclic-prefixed IFFT64/FFT64 symbol. Only the independent
// half of the spectrum (bins 1..31) carries information; bin 0 (DC) and
// bin 32 (Nyquist) are nulled, and bins 33..63 are filled as the conjugate
// mirror of 1..31 so the inverse transform produces a real-valued signal.
// Within the independent half, bins that are multiples of 8 (8, 16, 24)
// carry a known pilot value for receive-side equalization; the rest (28
// bins) each carry one BPSK-coded data bit.
//
// dsp.FFT64/IFFT64 are fixed at 64 points, so cfg.SubcarrierCount is not
// consulted; the scheme always runs at n=64.
type ofdmModem struct{}

const (
	ofdmN          = 64
	ofdmNullDC     = 0
	ofdmNullNyq    = ofdmN / 2
	ofdmPilotValue = 1.0
)

func ofdmDataSubcarriers() []int {
	out := make([]int, 0, ofdmN/2-1)
	for i := 1; i < ofdmN/2; i++ {
		if i%8 != 0 {
			out = append(out, i)
		}
	}
	return out
}

func ofdmPilotSubcarriers() []int {
	out := make([]int, 0, 4)
	for i := 1; i < ofdmN/2; i++ {
		if i%8 == 0 {
			out = append(out, i)
		}
	}
	return out
}

// cpSymbolStart locates the OFDM block boundary by maximizing the classic
// cyclic-prefix autocorrelation: the first cp samples of a genuine block
// repeat n samples later. This is the "cyclic-prefix correlation for
// symbol timing" mechanism of spec.md §4.4, and (unlike the other three
// schemes) gives OFDM sample-accurate timing recovery independent of the
// coarse leading-silence trim applied upstream.
func cpSymbolStart(x []float64, cp, n int) int {
	blockLen := cp + n
	limit := len(x) - blockLen
	if limit < 0 {
		return 0
	}
	best := 0
	bestScore := -1.0
	for start := 0; start <= limit; start++ {
		var score float64
		for k := 0; k < cp; k++ {
			score += x[start+k] * x[start+k+n]
		}
		if score > bestScore {
			bestScore = score
			best = start
		}
	}
	return best
}

func (ofdmModem) Modulate(data []byte, nbits int, cfg Config) []int16 {
	cp := cfg.CyclicPrefixLength
	if cp <= 0 {
		cp = 16
	}
	dataIdx := ofdmDataSubcarriers()
	pilotIdx := ofdmPilotSubcarriers()
	bitsPerSym := len(dataIdx)
	blockLen := cp + ofdmN
	rampLen := blockLen

	nSym := (nbits + bitsPerSym - 1) / bitsPerSym
	out := make([]float64, 0, 2*rampLen+nSym*blockLen)
	out = append(out, make([]float64, rampLen)...)

	r := bitio.NewReader(data, nbits)
	bitsRead := 0
	for s := 0; s < nSym; s++ {
		freq := make([]complex128, ofdmN)
		for _, idx := range pilotIdx {
			freq[idx] = complex(ofdmPilotValue, 0)
			freq[ofdmN-idx] = complex(ofdmPilotValue, 0)
		}
		for _, idx := range dataIdx {
			var bit byte
			if bitsRead < nbits {
				b, _ := r.ReadBit()
				bit = byte(b)
				bitsRead++
			}
			val := -1.0
			if bit == 1 {
				val = 1.0
			}
			freq[idx] = complex(val, 0)
			freq[ofdmN-idx] = complex(val, 0)
		}
		freq[ofdmNullDC] = 0
		freq[ofdmNullNyq] = 0

		td := dsp.IFFT64(freq)
		block := make([]float64, blockLen)
		for i := 0; i < cp; i++ {
			block[i] = real(td[ofdmN-cp+i])
		}
		for i := 0; i < ofdmN; i++ {
			block[cp+i] = real(td[i])
		}
		out = append(out, block...)
	}
	out = append(out, make([]float64, rampLen)...)

	return quantize(out, rampLen, cfg)
}

func (ofdmModem) Demodulate(samples []int16, cfg Config) []byte {
	cp := cfg.CyclicPrefixLength
	if cp <= 0 {
		cp = 16
	}
	blockLen := cp + ofdmN
	x := dsp.ToFloat64(samples)
	if len(x) < blockLen {
		return nil
	}

	dataIdx := ofdmDataSubcarriers()
	pilotIdx := ofdmPilotSubcarriers()

	start := cpSymbolStart(x, cp, ofdmN)
	var bits []byte
	for start+blockLen <= len(x) {
		block := x[start+cp : start+cp+ofdmN]
		freq := make([]complex128, ofdmN)
		for i, v := range block {
			freq[i] = complex(v, 0)
		}
		spectrum := dsp.FFT64(freq)

		var g complex128
		for _, idx := range pilotIdx {
			g += spectrum[idx]
		}
		g /= complex(float64(len(pilotIdx)), 0)

		for _, idx := range dataIdx {
			var bit byte
			if g != 0 {
				eq := spectrum[idx] / g
				if real(eq) > 0 {
					bit = 1
				}
			}
			bits = append(bits, bit)
		}
		start += blockLen
	}

	return bits
}
