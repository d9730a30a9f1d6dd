package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// expand turns octet-packed, MSB-first bytes into the one-bit-per-byte raw
// representation a demodulator would produce.
func expand(data []byte) []byte {
	out := make([]byte, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			out = append(out, (b>>uint(i))&1)
		}
	}
	return out
}

func invert(raw []byte) []byte {
	out := make([]byte, len(raw))
	for i, b := range raw {
		if b == 0 {
			out[i] = 1
		} else {
			out[i] = 0
		}
	}
	return out
}

func TestParseFindsCleanFrame(t *testing.T) {
	payload := []byte{0x12, 0x34, 0x56}
	framed := Build(payload)
	raw := expand(framed)

	got, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestParseTolerateBitSlip(t *testing.T) {
	payload := []byte{0xAB, 0xCD}
	framed := Build(payload)
	raw := expand(framed)

	for slip := 0; slip < 8; slip++ {
		prefix := make([]byte, slip)
		slipped := append(prefix, raw...)
		got, err := Parse(slipped)
		require.NoError(t, err, "slip=%d", slip)
		assert.Equal(t, payload, got, "slip=%d", slip)
	}
}

func TestParseTolerateInversion(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03}
	framed := Build(payload)
	raw := invert(expand(framed))

	got, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestParseNoSyncOnNoise(t *testing.T) {
	raw := make([]byte, 256)
	for i := range raw {
		raw[i] = byte((i * 2654435761 >> 16) % 2)
	}
	_, err := Parse(raw)
	assert.ErrorIs(t, err, ErrNoSync)
}

func TestParseRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 64).Draw(t, "n")
		payload := make([]byte, n)
		for i := range payload {
			payload[i] = byte(rapid.IntRange(0, 255).Draw(t, "b"))
		}
		slip := rapid.IntRange(0, 7).Draw(t, "slip")

		framed := Build(payload)
		raw := expand(framed)
		raw = append(make([]byte, slip), raw...)

		got, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})
}

func TestParseTolerateLeadingGarbageBeyondFirstByte(t *testing.T) {
	payload := []byte{0x42, 0x43}
	framed := Build(payload)
	raw := expand(framed)

	garbage := make([]byte, 773)
	for i := range garbage {
		garbage[i] = byte((i * 7) % 2)
	}
	raw = append(garbage, raw...)

	got, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestHammingToleranceAllowsFewBitErrors(t *testing.T) {
	payload := []byte{0x99}
	framed := Build(payload)
	raw := expand(framed)

	// Flip 4 bits inside the sync window; still within the <=4 tolerance.
	for _, idx := range []int{0, 10, 20, 30} {
		if raw[idx] == 0 {
			raw[idx] = 1
		} else {
			raw[idx] = 0
		}
	}

	_, err := Parse(raw)
	assert.NoError(t, err)
}
