// Package station loads the station metadata profile of SPEC_FULL.md's
// DATA MODEL — callsign, grid locator, and latitude/longitude — from a YAML
// config file, the way the teacher's deviceid.go loads tocalls.yaml: a
// fixed search path list, read once, unmarshaled with gopkg.in/yaml.v3.
package station

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/openham/ohm/internal/locator"
)

// Profile is a station's identity and location, per spec.md's
// station-metadata fields. It is not written into transmitted frames.
type Profile struct {
	Callsign string  `yaml:"callsign"`
	Locator  string  `yaml:"locator,omitempty"`
	Lat      float64 `yaml:"lat,omitempty"`
	Lon      float64 `yaml:"lon,omitempty"`
}

// searchLocations is the fixed file lookup order, mirroring the teacher's
// search_locations list for tocalls.yaml.
var searchLocations = []string{
	"station.yaml",
	"config/station.yaml",
	"../config/station.yaml",
}

// Load reads a station profile from path, or — if path is empty — the
// first file found in searchLocations. It fills in Locator from Lat/Lon
// when the file supplies coordinates but no explicit locator, and
// validates that a callsign was given.
func Load(path string) (Profile, error) {
	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return Profile{}, fmt.Errorf("station: %w", err)
		}
	} else {
		data, err = readFirst(searchLocations)
		if err != nil {
			return Profile{}, fmt.Errorf("station: %w", err)
		}
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("station: parsing profile: %w", err)
	}

	p.Callsign = strings.ToUpper(strings.TrimSpace(p.Callsign))
	if p.Callsign == "" {
		return Profile{}, fmt.Errorf("station: profile is missing a callsign")
	}

	if p.Locator == "" && (p.Lat != 0 || p.Lon != 0) {
		grid, err := locator.FromLatLon(p.Lat, p.Lon)
		if err != nil {
			return Profile{}, fmt.Errorf("station: %w", err)
		}
		p.Locator = grid
	}

	return p, nil
}

func readFirst(locations []string) ([]byte, error) {
	var lastErr error
	for _, loc := range locations {
		data, err := os.ReadFile(loc)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no station profile found in %v: %w", locations, lastErr)
}
