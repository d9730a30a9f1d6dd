// Package locator converts station coordinates to and from Maidenhead grid
// locators, the station-metadata piece of spec.md's DATA MODEL. The field/
// square/subsquare arithmetic is plain degree subdivision; no example repo
// in the retrieval pack implements Maidenhead locators, so this is built
// directly from the standard definition (see DESIGN.md for why
// github.com/tzneal/coordconv, tried first as a ground for this package,
// was dropped instead of kept decoratively).
package locator

import (
	"fmt"
	"math"
)

// ErrOutOfRange is returned when a latitude or longitude is outside its
// valid range.
type ErrOutOfRange struct {
	Field string
	Value float64
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("locator: %s %g out of range", e.Field, e.Value)
}

const fieldDeg = 20.0
const squareDeg = 2.0
const subsquareDeg = 2.0 / 24.0

// FromLatLon computes the 6-character Maidenhead grid locator for a
// coordinate, per the standard field/square/subsquare subdivision: 18
// fields of 20°x10°, each split into 10 squares of 2°x1°, each split into
// 24 subsquares of 5'x2.5'.
func FromLatLon(lat, lon float64) (string, error) {
	if lat < -90 || lat > 90 {
		return "", &ErrOutOfRange{Field: "latitude", Value: lat}
	}
	if lon < -180 || lon > 180 {
		return "", &ErrOutOfRange{Field: "longitude", Value: lon}
	}

	adjLon := lon + 180
	adjLat := lat + 90

	fieldLon := int(adjLon / fieldDeg)
	fieldLat := int(adjLat / (fieldDeg / 2))
	remLon := adjLon - float64(fieldLon)*fieldDeg
	remLat := adjLat - float64(fieldLat)*(fieldDeg/2)

	squareLon := int(remLon / squareDeg)
	squareLat := int(remLat / (squareDeg / 2))
	remLon -= float64(squareLon) * squareDeg
	remLat -= float64(squareLat) * (squareDeg / 2)

	subLon := int(remLon / subsquareDeg)
	subLat := int(remLat / (subsquareDeg / 2))

	subLon = clamp(subLon, 0, 23)
	subLat = clamp(subLat, 0, 23)

	return string([]byte{
		byte('A' + fieldLon),
		byte('A' + fieldLat),
		byte('0' + squareLon),
		byte('0' + squareLat),
		byte('a' + subLon),
		byte('a' + subLat),
	}), nil
}

// ToLatLon returns the coordinate of the southwest corner of the locator's
// subsquare, the inverse of FromLatLon. Only the 4- or 6-character forms
// are accepted.
func ToLatLon(grid string) (lat, lon float64, err error) {
	if len(grid) != 4 && len(grid) != 6 {
		return 0, 0, fmt.Errorf("locator: %q must be 4 or 6 characters", grid)
	}
	upper := []byte(grid)
	for i := 0; i < 2; i++ {
		if upper[i] >= 'a' && upper[i] <= 'z' {
			upper[i] -= 'a' - 'A'
		}
	}

	fieldLon := float64(upper[0] - 'A')
	fieldLat := float64(upper[1] - 'A')
	squareLon := float64(upper[2] - '0')
	squareLat := float64(upper[3] - '0')
	if fieldLon < 0 || fieldLon > 17 || fieldLat < 0 || fieldLat > 17 {
		return 0, 0, fmt.Errorf("locator: %q has an invalid field", grid)
	}
	if squareLon < 0 || squareLon > 9 || squareLat < 0 || squareLat > 9 {
		return 0, 0, fmt.Errorf("locator: %q has an invalid square", grid)
	}

	lon = fieldLon*fieldDeg + squareLon*squareDeg - 180
	lat = fieldLat*(fieldDeg/2) + squareLat*(squareDeg/2) - 90

	if len(grid) == 6 {
		subLon := float64(lowerIndex(grid[4]))
		subLat := float64(lowerIndex(grid[5]))
		if subLon < 0 || subLon > 23 || subLat < 0 || subLat > 23 {
			return 0, 0, fmt.Errorf("locator: %q has an invalid subsquare", grid)
		}
		lon += subLon * subsquareDeg
		lat += subLat * (subsquareDeg / 2)
	}

	return lat, lon, nil
}

func lowerIndex(b byte) int {
	if b >= 'a' && b <= 'z' {
		return int(b - 'a')
	}
	if b >= 'A' && b <= 'Z' {
		return int(b - 'A')
	}
	return -1
}

func clamp(v, lo, hi int) int {
	return int(math.Min(math.Max(float64(v), float64(lo)), float64(hi)))
}
