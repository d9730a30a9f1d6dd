package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestToFloat64StaysInUnitRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 256).Draw(t, "n")
		samples := make([]int16, n)
		for i := range samples {
			samples[i] = int16(rapid.IntRange(-32768, 32767).Draw(t, "s"))
		}

		f := ToFloat64(samples)
		require.Len(t, f, n)
		for _, v := range f {
			assert.GreaterOrEqual(t, v, -1.0)
			assert.Less(t, v, 1.0001)
		}
	})
}

func TestQuantizeInt16Saturates(t *testing.T) {
	out := QuantizeInt16([]float64{2.0, -2.0, 0.0}, 1.0)
	assert.Equal(t, int16(32767), out[0])
	assert.Equal(t, int16(-32768), out[1])
	assert.Equal(t, int16(0), out[2])
}

func TestGoertzelPicksTargetTone(t *testing.T) {
	const sampleRate = 48000.0
	samples := CosineBurst(1615, sampleRate, 0, 384)

	mark := Goertzel(samples, 1615, sampleRate)
	space := Goertzel(samples, 1385, sampleRate)

	assert.Greater(t, mark, space)
}

func TestRootRaisedCosinePeaksAtCenter(t *testing.T) {
	taps := RootRaisedCosine(0.35, 4, 8)
	mid := len(taps) / 2

	for i, v := range taps {
		if i != mid {
			assert.LessOrEqual(t, math.Abs(v), math.Abs(taps[mid])+1e-9)
		}
	}
}

func TestToneGeneratorPhaseContinuous(t *testing.T) {
	g := NewToneGenerator(48000)
	a := g.Generate(1500, 100)
	phaseAfterA := g.Phase()

	b := CosineBurst(1500, 48000, 0, 100)
	_ = b

	g2 := NewToneGenerator(48000)
	full := g2.Generate(1500, 200)

	for i, v := range a {
		assert.InDelta(t, full[i], v, 1e-9)
	}
	assert.InDelta(t, math.Sin(phaseAfterA), full[100], 1e-6)
}

func TestResampleIdentity(t *testing.T) {
	in := []float64{0, 1, 2, 3, 4}
	out := Resample(in, 48000, 48000)
	assert.Equal(t, in, out)
}

func TestResampleHalvesLength(t *testing.T) {
	in := make([]float64, 100)
	for i := range in {
		in[i] = float64(i)
	}
	out := Resample(in, 48000, 24000)
	assert.InDelta(t, 50, len(out), 1)
}

func TestFFT64RoundTrip(t *testing.T) {
	in := make([]complex128, 64)
	for i := range in {
		in[i] = complex(float64(i%7), 0)
	}

	freq := FFT64(in)
	back := IFFT64(freq)

	for i := range in {
		assert.InDelta(t, real(in[i]), real(back[i]), 1e-6)
		assert.InDelta(t, imag(in[i]), imag(back[i]), 1e-6)
	}
}

func TestConvolveSamePreservesLength(t *testing.T) {
	in := []float64{1, 0, 0, 0, 0}
	taps := RootRaisedCosine(0.35, 2, 4)
	out := ConvolveSame(in, taps)
	assert.Len(t, out, len(in))
}
