// Package codec implements the text-codec component of spec.md §4.2: text
// to bit-stream and back, either as canonical Huffman over an alphabet of
// Unicode scalars plus ham-radio tokens (the default), or as raw ASCII
// octet passthrough.
package codec

import (
	"errors"
	"fmt"

	"github.com/openham/ohm/internal/bitio"
)

// Kind selects which codec variant to use.
type Kind string

const (
	Huffman Kind = "huffman"
	ASCII   Kind = "ascii"
)

// ErrCodecFailure is returned when the Huffman decoder reaches an undefined
// transition or runs out of bits mid-symbol, per spec.md §7.
var ErrCodecFailure = errors.New("codec: undefined decode transition")

// ErrInvalidConfiguration is returned for an unrecognized codec Kind.
var ErrInvalidConfiguration = errors.New("codec: invalid configuration")

// Encode turns text into an octet-packed bit-stream according to kind. The
// Huffman stream is self-delimiting (it ends in an end-of-message symbol);
// the ASCII stream has no end marker and runs to end-of-stream.
func Encode(text string, kind Kind) ([]byte, int, error) {
	switch kind {
	case Huffman, "":
		w := huffmanEncode(text)
		return w.Bytes(), w.Len(), nil
	case ASCII:
		w := asciiEncode(text)
		return w.Bytes(), w.Len(), nil
	default:
		return nil, 0, fmt.Errorf("%w: unknown text codec %q", ErrInvalidConfiguration, kind)
	}
}

// Decode reverses Encode. data holds nbits valid bits, MSB-first.
func Decode(data []byte, nbits int, kind Kind) (string, error) {
	r := bitio.NewReader(data, nbits)
	switch kind {
	case Huffman, "":
		return huffmanDecode(r)
	case ASCII:
		return asciiDecode(r)
	default:
		return "", fmt.Errorf("%w: unknown text codec %q", ErrInvalidConfiguration, kind)
	}
}
