// Package orchestrator wires internal/codec, internal/frame, and
// internal/modem into the three operations of spec.md §4.5: transmit,
// receive, and auto-detect. It owns the five error kinds of spec.md §7
// and the charmbracelet/log logging the core packages stay free of.
package orchestrator

import (
	"errors"
	"fmt"

	"github.com/openham/ohm/internal/codec"
	"github.com/openham/ohm/internal/dsp"
	"github.com/openham/ohm/internal/frame"
	"github.com/openham/ohm/internal/logging"
	"github.com/openham/ohm/internal/modem"
)

// ErrNoPayload is returned when AutoDetect exhausts every modulation
// without a valid decode, per spec.md §7.
var ErrNoPayload = errors.New("orchestrator: no payload decoded in any modulation")

// Options carries the per-call knobs of spec.md §6 that aren't already
// part of modem.Config: which codec variant to use, and an optional
// station callsign (spec.md §3's station-metadata fields), which Transmit
// logs but does not add to the transmitted text.
type Options struct {
	Codec    codec.Kind
	Config   modem.Config
	Callsign string
}

// Transmit encodes text, frames it, and modulates it under the named
// scheme, returning int16 PCM samples ready to write to a WAV file.
func Transmit(text string, modName modem.Name, opts Options) ([]int16, error) {
	log := logging.With("op", "transmit", "modulation", modName, "callsign", opts.Callsign)

	m, err := modem.Get(modName)
	if err != nil {
		log.Error("unknown modulation", "err", err)
		return nil, err
	}

	// opts.Callsign identifies the station for logging and for the
	// pink-noise/CW/voice preambles spec.md §4.5 delegates to external
	// collaborators; it is not spliced into the text payload itself, so
	// receive() returns exactly what was passed to transmit().
	data, nbits, err := codec.Encode(text, opts.Codec)
	if err != nil {
		log.Error("encode failed", "err", err)
		return nil, err
	}

	framed := frame.Build(data)
	totalBits := len(frame.Sync)*8 + nbits
	samples := m.Modulate(framed, totalBits, opts.Config)

	log.Debug("transmitted", "bits", totalBits, "samples", len(samples))
	return samples, nil
}

// Receive demodulates samples under the named scheme, unframes, and
// decodes the recovered text. It returns frame.ErrNoSync or a
// codec.ErrCodecFailure-wrapped error when the single named modulation
// fails, per spec.md §7's single-mode policy.
func Receive(samples []int16, modName modem.Name, opts Options) (string, error) {
	log := logging.With("op", "receive", "modulation", modName)

	m, err := modem.Get(modName)
	if err != nil {
		log.Error("unknown modulation", "err", err)
		return "", err
	}

	text, err := decodeOne(m, samples, opts)
	if err != nil {
		log.Debug("decode failed", "err", err)
		return "", err
	}

	log.Debug("received", "chars", len(text))
	return text, nil
}

// AutoDetect tries every modulation in modem.AutoDetectOrder and returns
// the first that yields both a synced frame and a successful codec
// decode. A NoSync or CodecFailure in any one modulation only demotes the
// attempt to the next modulation, per spec.md §7; if every modulation
// fails, AutoDetect returns ErrNoPayload.
func AutoDetect(samples []int16, opts Options) (modem.Name, string, error) {
	log := logging.With("op", "auto_detect")

	for _, name := range modem.AutoDetectOrder {
		m, err := modem.Get(name)
		if err != nil {
			continue
		}
		text, err := decodeOne(m, samples, opts)
		if err != nil {
			log.Debug("modulation did not decode", "modulation", name, "err", err)
			continue
		}
		log.Debug("auto-detected", "modulation", name, "chars", len(text))
		return name, text, nil
	}

	log.Debug("no modulation decoded")
	return "", "", ErrNoPayload
}

// decodeOne runs the dsp.TrimLeadingSilence/demodulate/unframe/decode chain
// common to Receive and AutoDetect.
func decodeOne(m modem.Modem, samples []int16, opts Options) (string, error) {
	trimmed := dsp.TrimLeadingSilence(samples)
	bits := m.Demodulate(trimmed, opts.Config)

	payload, err := frame.Parse(bits)
	if err != nil {
		return "", err
	}

	text, err := codec.Decode(payload, len(payload)*8, opts.Codec)
	if err != nil {
		return "", fmt.Errorf("orchestrator: %w", err)
	}
	return text, nil
}
