package dsp

import "gonum.org/v1/gonum/dsp/fourier"

// FFT64 computes the forward 64-point complex DFT used by the OFDM
// modulator/demodulator. Inputs shorter than 64 samples are zero-padded;
// longer inputs are truncated to the first 64, since every caller in this
// package deals in exactly one OFDM symbol at a time.
func FFT64(in []complex128) []complex128 {
	return fftN(in, 64)
}

// IFFT64 computes the inverse 64-point complex DFT, matching FFT64.
func IFFT64(in []complex128) []complex128 {
	return ifftN(in, 64)
}

func fftN(in []complex128, n int) []complex128 {
	buf := fitComplex(in, n)
	fft := fourier.NewCmplxFFT(n)
	return fft.Coefficients(nil, buf)
}

func ifftN(in []complex128, n int) []complex128 {
	buf := fitComplex(in, n)
	fft := fourier.NewCmplxFFT(n)
	out := fft.Sequence(nil, buf)
	// gonum's Sequence is the unnormalized inverse transform (its output is
	// n times the input of Coefficients), so divide by n here to match the
	// usual IFFT convention.
	for i := range out {
		out[i] /= complex(float64(n), 0)
	}
	return out
}

func fitComplex(in []complex128, n int) []complex128 {
	buf := make([]complex128, n)
	copy(buf, in)
	return buf
}
