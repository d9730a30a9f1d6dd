package station

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "station.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadExplicitLocator(t *testing.T) {
	path := writeProfile(t, "callsign: s56spz\nlocator: JN76\n")
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "S56SPZ", p.Callsign)
	assert.Equal(t, "JN76", p.Locator)
}

func TestLoadDerivesLocatorFromLatLon(t *testing.T) {
	path := writeProfile(t, "callsign: s56spz\nlat: 46.05\nlon: 14.51\n")
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "JN76", p.Locator[:4])
}

func TestLoadRejectsMissingCallsign(t *testing.T) {
	path := writeProfile(t, "locator: JN76\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
