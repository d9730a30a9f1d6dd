package dsp

import "math"

// RootRaisedCosine returns the FIR taps of a root-raised-cosine pulse with
// the given roll-off (beta), spanning symbolSpan symbols at samplesPerSymbol
// samples each. The filter is normalized to unit energy.
//
// span is in symbols either side of the peak, so the returned slice has
// length 2*symbolSpan*samplesPerSymbol + 1.
func RootRaisedCosine(beta float64, symbolSpan, samplesPerSymbol int) []float64 {
	n := 2*symbolSpan*samplesPerSymbol + 1
	taps := make([]float64, n)
	mid := n / 2

	for i := range taps {
		t := float64(i-mid) / float64(samplesPerSymbol)
		taps[i] = rrcSample(t, beta)
	}

	energy := 0.0
	for _, v := range taps {
		energy += v * v
	}
	norm := 1.0 / math.Sqrt(energy)
	for i := range taps {
		taps[i] *= norm
	}
	return taps
}

// rrcSample evaluates the RRC impulse response at normalized time t (in
// symbol periods), handling the two removable singularities at t=0 and
// t=±1/(4*beta).
func rrcSample(t, beta float64) float64 {
	if beta == 0 {
		if t == 0 {
			return 1
		}
		return math.Sin(math.Pi*t) / (math.Pi * t)
	}

	if t == 0 {
		return 1 - beta + 4*beta/math.Pi
	}

	denom := 1 - math.Pow(4*beta*t, 2)
	if math.Abs(denom) < 1e-9 {
		return (beta / math.Sqrt2) * ((1+2/math.Pi)*math.Sin(math.Pi/(4*beta)) + (1-2/math.Pi)*math.Cos(math.Pi/(4*beta)))
	}

	num := math.Sin(math.Pi*t*(1-beta)) + 4*beta*t*math.Cos(math.Pi*t*(1+beta))
	return num / (math.Pi * t * denom)
}

// Convolve performs a full discrete convolution of in with taps, returning
// a slice of length len(in)+len(taps)-1.
func Convolve(in, taps []float64) []float64 {
	out := make([]float64, len(in)+len(taps)-1)
	for i, x := range in {
		if x == 0 {
			continue
		}
		for j, h := range taps {
			out[i+j] += x * h
		}
	}
	return out
}

// ConvolveSame performs the same convolution as Convolve but trims the
// result back to len(in) samples, centered on the taps so that group delay
// is removed (taps must have odd length).
func ConvolveSame(in, taps []float64) []float64 {
	full := Convolve(in, taps)
	offset := len(taps) / 2
	out := make([]float64, len(in))
	copy(out, full[offset:offset+len(in)])
	return out
}
