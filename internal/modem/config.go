// Package modem implements the four transmit/receive chains of spec.md
// §4.4 — BPSK, FSK, AFSK, OFDM — behind one two-operation contract, per the
// "polymorphism over modems" design note in spec.md §9: a tagged variant
// plus a dispatch table, since the mode set is closed and versioned
// ("ohm.text.v1").
package modem

import "fmt"

// Name identifies one of the four modulation schemes.
type Name string

const (
	BPSK Name = "bpsk"
	FSK  Name = "fsk"
	AFSK Name = "afsk"
	OFDM Name = "ofdm"
)

// AFSKProfile selects one of the four fixed AFSK tone/baud pairings of
// spec.md §4.4.
type AFSKProfile string

const (
	Bell202 AFSKProfile = "bell202"
	Bell103 AFSKProfile = "bell103"
	VHF     AFSKProfile = "vhf"
	HF      AFSKProfile = "hf"
)

// Config is the modulation configuration record of spec.md §3. Only the
// fields relevant to the selected scheme are consulted.
type Config struct {
	SampleRate         int
	CenterFrequency    float64 // BPSK
	SymbolRate         float64 // BPSK/FSK/OFDM baud; AFSK derives its own from Profile
	MarkFrequency      float64 // FSK
	SpaceFrequency     float64 // FSK
	AFSKProfileName    AFSKProfile
	SubcarrierCount    int // OFDM
	CyclicPrefixLength int // OFDM
	PowerScale         float64
}

// DefaultConfig returns the configuration defaults of spec.md §6.
func DefaultConfig() Config {
	return Config{
		SampleRate:         48000,
		CenterFrequency:    1500,
		SymbolRate:         125,
		MarkFrequency:      1615,
		SpaceFrequency:     1385,
		AFSKProfileName:    Bell202,
		SubcarrierCount:    64,
		CyclicPrefixLength: 16,
		PowerScale:         0.8,
	}
}

// ErrInvalidConfiguration is returned for an unknown modulation name or an
// out-of-range parameter, per spec.md §7.
type ErrInvalidConfiguration struct {
	Reason string
}

func (e *ErrInvalidConfiguration) Error() string {
	return fmt.Sprintf("modem: invalid configuration: %s", e.Reason)
}

// afskTones returns the (mark, space, baud) triple for a profile, per
// spec.md §4.4's profile table.
func afskTones(profile AFSKProfile) (mark, space, baud float64, err error) {
	switch profile {
	case Bell202, "":
		return 1200, 2200, 1200, nil
	case Bell103:
		return 1070, 1270, 300, nil
	case VHF:
		return 1200, 2200, 1200, nil
	case HF:
		return 1600, 1800, 300, nil
	default:
		return 0, 0, 0, &ErrInvalidConfiguration{Reason: fmt.Sprintf("unknown afsk profile %q", profile)}
	}
}

// samplesPerSymbol computes the integer symbol-clock divisor, per spec.md
// §4.4's "symbol-clock that divides the sample rate". All of this module's
// default configurations (125/300/1200 baud at 48 kHz) divide evenly.
func samplesPerSymbol(sampleRate int, baud float64) int {
	if baud <= 0 {
		return 0
	}
	sps := float64(sampleRate) / baud
	return int(sps + 0.5)
}

// rampFraction is the bounded-length ramp-up/ramp-down padding added by
// every modulator, per spec.md §3's buffer-length invariant.
const rampFraction = 1.0 // one symbol period
