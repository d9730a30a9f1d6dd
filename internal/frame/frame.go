// Package frame implements the byte-oriented synchronization and
// payload-delimiting protocol of spec.md §4.3: prepend SYNC on transmit,
// and on receive scan for SYNC tolerant of bit-slip, polarity inversion,
// and bit order, per the tolerance matrix in spec.md §4.3.
package frame

import (
	"errors"
)

// Sync is the fixed 8-octet pattern that marks the start of a frame, MSB
// first, per spec.md §3/§6.
var Sync = []byte{0x55, 0x55, 0x55, 0x55, 0xAA, 0xAA, 0x7E, 0x7E}

// syncBits is the length of Sync in bits: the width of the window each
// candidate alignment is correlated over.
var syncBits = len(Sync) * 8

// maxHammingDistance is the correlation tolerance: a match is declared when
// the Hamming distance between a candidate window and Sync is at most this,
// per spec.md §4.3.
const maxHammingDistance = 4

// ErrNoSync is returned when no (offset, polarity, bit-order) combination
// correlates against Sync within tolerance, per spec.md §7.
var ErrNoSync = errors.New("frame: no sync found")

// Build prepends Sync to payload (already octet-packed), producing the
// octet sequence handed to a modem as a bit-stream, per spec.md §4.3's
// transmit-side behavior.
func Build(payload []byte) []byte {
	out := make([]byte, 0, len(Sync)+len(payload))
	out = append(out, Sync...)
	out = append(out, payload...)
	return out
}

// trial is one (offset, inverted, lsbFirst) combination from the tolerance
// matrix in spec.md §4.3, tried in the table's exact order.
type trial struct {
	offset   int
	inverted bool
	lsbFirst bool
}

func trials() []trial {
	var out []trial
	for _, lsb := range []bool{false, true} {
		for _, inv := range []bool{false, true} {
			for off := 0; off < 8; off++ {
				out = append(out, trial{offset: off, inverted: inv, lsbFirst: lsb})
			}
		}
	}
	return out
}

// Parse scans raw — one bit per byte (0 or nonzero), as produced by a
// demodulator — for Sync using the 32-way tolerance matrix, and returns the
// octet-packed payload that follows it. If no alignment correlates within
// tolerance, it returns ErrNoSync.
//
// For a fixed (offset, polarity, bit-order) combination, SYNC may still be
// preceded by an arbitrary run of leading bits (e.g. the bits a demodulator
// produces while tracking silence before the real signal starts), so each
// combination's search slides its correlation window in whole-octet steps
// from offset to the end of raw, not just at offset itself — this is what
// makes the per-sample silence-prefix invariant in spec.md §8 hold without
// requiring the demodulator to detect silence.
func Parse(raw []byte) ([]byte, error) {
	for _, tr := range trials() {
		for start := tr.offset; start+syncBits <= len(raw); start += 8 {
			packed := pack(raw[start:], tr.inverted, tr.lsbFirst)
			if len(packed) < len(Sync) {
				continue
			}
			if hamming(packed[:len(Sync)], Sync) <= maxHammingDistance {
				return packed[len(Sync):], nil
			}
		}
	}
	return nil, ErrNoSync
}

// pack groups raw one-bit-per-byte values into octets, applying polarity
// inversion first and then the chosen bit order. Trailing bits that don't
// fill a complete octet are dropped.
func pack(raw []byte, inverted, lsbFirst bool) []byte {
	n := len(raw) / 8
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		var b byte
		for j := 0; j < 8; j++ {
			bit := raw[i*8+j]
			if bit != 0 {
				bit = 1
			}
			if inverted {
				bit ^= 1
			}
			if lsbFirst {
				b |= bit << uint(j)
			} else {
				b |= bit << uint(7-j)
			}
		}
		out[i] = b
	}
	return out
}

// hamming returns the bit-level Hamming distance between two equal-length
// byte slices.
func hamming(a, b []byte) int {
	dist := 0
	for i := range a {
		x := a[i] ^ b[i]
		for x != 0 {
			dist++
			x &= x - 1
		}
	}
	return dist
}
