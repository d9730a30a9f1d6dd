package codec

import (
	"fmt"

	"github.com/openham/ohm/internal/bitio"
)

// asciiEncode is the identity codec: the input's UTF-8 bytes verbatim, with
// no framing symbol of its own (it relies entirely on end-of-stream, per
// spec.md §4.2).
func asciiEncode(text string) *bitio.Writer {
	w := bitio.NewWriter()
	w.WriteBytes([]byte(text))
	return w
}

// asciiDecode reads octets until the reader is exhausted. A dangling
// partial octet (fewer than 8 bits remaining) is a CodecFailure.
func asciiDecode(r *bitio.Reader) (string, error) {
	var out []byte
	for r.Remaining() > 0 {
		if r.Remaining() < 8 {
			return "", fmt.Errorf("codec: trailing %d bits do not form an octet: %w", r.Remaining(), ErrCodecFailure)
		}
		v, ok := r.ReadBits(8)
		if !ok {
			return "", fmt.Errorf("codec: ran out of bits reading octet: %w", ErrCodecFailure)
		}
		out = append(out, byte(v))
	}
	return string(out), nil
}
