package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/openham/ohm/internal/codec"
	"github.com/openham/ohm/internal/frame"
	"github.com/openham/ohm/internal/modem"
)

func defaultOpts() Options {
	return Options{Codec: codec.Huffman, Config: modem.DefaultConfig()}
}

func roundTrip(t rapid.TB, text string, modName modem.Name, opts Options) string {
	t.Helper()
	samples, err := Transmit(text, modName, opts)
	require.NoError(t, err)

	got, err := Receive(samples, modName, opts)
	require.NoError(t, err)
	return got
}

func TestScenarioLongTransmission(t *testing.T) {
	text := "Hello from OpenHam! This is a test transmission from station S56SPZ using digital modes."
	opts := defaultOpts()
	opts.Callsign = "S56SPZ"
	assert.Equal(t, text, roundTrip(t, text, modem.BPSK, opts))
}

func TestScenarioHello(t *testing.T) {
	assert.Equal(t, "HELLO", roundTrip(t, "HELLO", modem.BPSK, defaultOpts()))
}

func TestScenarioUnicodePreserved(t *testing.T) {
	assert.Equal(t, "HELLO ŠČĆŽ", roundTrip(t, "HELLO ŠČĆŽ", modem.BPSK, defaultOpts()))
}

func TestScenarioGreedyTokensObservableForm(t *testing.T) {
	text := "DE DE BK S56SPZ K"
	assert.Equal(t, text, roundTrip(t, text, modem.BPSK, defaultOpts()))
}

func TestScenarioQCodes(t *testing.T) {
	text := "QRZ? QRM QSY JN76"
	assert.Equal(t, text, roundTrip(t, text, modem.BPSK, defaultOpts()))
}

func TestScenarioAutoDetectFSK(t *testing.T) {
	text := "Auto-detection test for fsk"
	opts := defaultOpts()

	samples, err := Transmit(text, modem.FSK, opts)
	require.NoError(t, err)

	gotModulation, gotText, err := AutoDetect(samples, opts)
	require.NoError(t, err)
	assert.Equal(t, modem.FSK, gotModulation)
	assert.Equal(t, text, gotText)
}

func TestEmptyTextRoundTrips(t *testing.T) {
	assert.Equal(t, "", roundTrip(t, "", modem.BPSK, defaultOpts()))
}

func TestSingleCharacterRoundTrips(t *testing.T) {
	assert.Equal(t, "Q", roundTrip(t, "Q", modem.BPSK, defaultOpts()))
}

func TestTextContainingSyncOctetsRoundTrips(t *testing.T) {
	text := string([]byte{0x55, 0x55, 0x55, 0x55, 0xAA, 0xAA, 0x7E, 0x7E})
	// These octets are not valid UTF-8, and the Huffman codec works on
	// Unicode scalars, so the raw octets travel through the ASCII codec.
	opts := defaultOpts()
	opts.Codec = codec.ASCII
	assert.Equal(t, text, roundTrip(t, text, modem.BPSK, opts))
}

func TestAllModulationsAllCodecsRoundTrip(t *testing.T) {
	text := "CQ CQ DE S56SPZ K"
	for _, modName := range []modem.Name{modem.BPSK, modem.FSK, modem.AFSK, modem.OFDM} {
		for _, kind := range []codec.Kind{codec.Huffman, codec.ASCII} {
			opts := Options{Codec: kind, Config: modem.DefaultConfig()}
			assert.Equal(t, text, roundTrip(t, text, modName, opts), "modulation=%s codec=%s", modName, kind)
		}
	}
}

// TestModemRoundTripProperty generates arbitrary-length text across all
// four modulations, the modem-layer analog of codec's
// TestHuffmanRoundTripProperty/TestASCIIRoundTripProperty. Length is
// bounded small (rather than codec's 0-64) because BPSK's matched-filter
// convolution is O(n*m) over dense baseband samples, not the sparse
// impulse trains Convolve is optimized for.
func TestModemRoundTripProperty(t *testing.T) {
	for _, modName := range []modem.Name{modem.BPSK, modem.FSK, modem.AFSK, modem.OFDM} {
		modName := modName
		t.Run(string(modName), func(t *testing.T) {
			rapid.Check(t, func(t *rapid.T) {
				s := rapid.StringMatching(`[ -~]{0,16}`).Draw(t, "s")
				assert.Equal(t, s, roundTrip(t, s, modName, defaultOpts()))
			})
		})
	}
}

func TestLeadingSilenceToleratedAcrossModulations(t *testing.T) {
	opts := defaultOpts()
	for _, modName := range []modem.Name{modem.BPSK, modem.FSK, modem.AFSK, modem.OFDM} {
		samples, err := Transmit("DE S56SPZ", modName, opts)
		require.NoError(t, err)

		silence := make([]int16, opts.Config.SampleRate/2)
		padded := append(silence, samples...)

		got, err := Receive(padded, modName, opts)
		require.NoError(t, err, "modulation=%s", modName)
		assert.Equal(t, "DE S56SPZ", got, "modulation=%s", modName)
	}
}

func TestPolarityInversionTolerated(t *testing.T) {
	opts := defaultOpts()
	for _, modName := range []modem.Name{modem.BPSK, modem.FSK, modem.AFSK, modem.OFDM} {
		samples, err := Transmit("DE S56SPZ", modName, opts)
		require.NoError(t, err)

		inverted := make([]int16, len(samples))
		for i, s := range samples {
			inverted[i] = -s
		}

		got, err := Receive(inverted, modName, opts)
		require.NoError(t, err, "modulation=%s", modName)
		assert.Equal(t, "DE S56SPZ", got, "modulation=%s", modName)
	}
}

func TestReceiveNoiseReturnsNoSync(t *testing.T) {
	noise := make([]int16, 4800)
	for i := range noise {
		noise[i] = int16((i*2654435761 + 12345) % 1000)
	}
	_, err := Receive(noise, modem.BPSK, defaultOpts())
	assert.ErrorIs(t, err, frame.ErrNoSync)
}

func TestTransmitInvalidModulation(t *testing.T) {
	_, err := Transmit("HELLO", modem.Name("invalid"), defaultOpts())
	assert.Error(t, err)
}

func TestAutoDetectNoPayloadOnNoise(t *testing.T) {
	noise := make([]int16, 4800)
	for i := range noise {
		noise[i] = int16((i*2654435761 + 999) % 1000)
	}
	_, _, err := AutoDetect(noise, defaultOpts())
	assert.ErrorIs(t, err, ErrNoPayload)
}
