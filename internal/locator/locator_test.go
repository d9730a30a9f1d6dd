package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFromLatLonKnownStation(t *testing.T) {
	// JN76 covers Ljubljana (S5), per the spec.md worked example station.
	got, err := FromLatLon(46.05, 14.51)
	require.NoError(t, err)
	assert.Equal(t, "JN76", got[:4])
}

func TestFromLatLonRejectsOutOfRange(t *testing.T) {
	_, err := FromLatLon(91, 0)
	assert.Error(t, err)

	_, err = FromLatLon(0, 181)
	assert.Error(t, err)
}

func TestRoundTripWithinSubsquareTolerance(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lat := rapid.Float64Range(-89.9, 89.9).Draw(t, "lat")
		lon := rapid.Float64Range(-179.9, 179.9).Draw(t, "lon")

		grid, err := FromLatLon(lat, lon)
		require.NoError(t, err)

		rLat, rLon, err := ToLatLon(grid)
		require.NoError(t, err)

		assert.InDelta(t, lat, rLat, subsquareDeg/2)
		assert.InDelta(t, lon, rLon, subsquareDeg)
	})
}

func TestToLatLonRejectsBadLength(t *testing.T) {
	_, _, err := ToLatLon("JN7")
	assert.Error(t, err)
}
