package dsp

// Resample performs fractional-rate linear-interpolation resampling from
// srcRate to dstRate. It is used when a modem's native processing rate
// differs from the configured sample rate; the core modems in this module
// all run at 48 kHz directly, so this exists as the general primitive spec.md
// §4.1 calls for; no modem calls it, and only this package's tests exercise
// it.
func Resample(in []float64, srcRate, dstRate int) []float64 {
	if srcRate <= 0 || dstRate <= 0 || len(in) == 0 {
		return nil
	}
	if srcRate == dstRate {
		out := make([]float64, len(in))
		copy(out, in)
		return out
	}

	ratio := float64(srcRate) / float64(dstRate)
	outLen := int(float64(len(in)) / ratio)
	out := make([]float64, outLen)

	for i := range out {
		srcPos := float64(i) * ratio
		idx := int(srcPos)
		frac := srcPos - float64(idx)

		if idx+1 < len(in) {
			out[i] = in[idx]*(1-frac) + in[idx+1]*frac
		} else if idx < len(in) {
			out[i] = in[idx]
		}
	}
	return out
}
