package wav

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	samples := []int16{0, 1, -1, 32767, -32768, 1234, -4321}

	require.NoError(t, Write(path, 48000, samples))

	rate, got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 48000, rate)
	assert.Equal(t, samples, got)
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rate := rapid.IntRange(8000, 96000).Draw(t, "rate")
		n := rapid.IntRange(0, 200).Draw(t, "n")
		samples := make([]int16, n)
		for i := range samples {
			samples[i] = int16(rapid.IntRange(-32768, 32767).Draw(t, "s"))
		}

		path := filepath.Join(t.TempDir(), "prop.wav")
		require.NoError(t, Write(path, rate, samples))

		gotRate, got, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, rate, gotRate)
		assert.Equal(t, samples, got)
	})
}

func TestReadRejectsNonRIFF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file at all"), 0o644))

	_, _, err := Read(path)
	assert.Error(t, err)
}
