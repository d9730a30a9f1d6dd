package codec

import (
	"fmt"

	"github.com/openham/ohm/internal/bitio"
)

// escapeBits is the fixed width used to carry a raw Unicode scalar value
// after a symEscape marker. Unicode scalars top out at U+10FFFF, which fits
// in 21 bits.
const escapeBits = 21

// huffmanEncode implements the three-phase encoding process of spec.md
// §4.2: tokenize, Huffman-code each symbol (falling back to an escape +
// raw scalar for anything outside the static table), emit EOM, pad to an
// octet boundary.
func huffmanEncode(text string) *bitio.Writer {
	symbols := tokenize(text)
	w := bitio.NewWriter()

	for _, sym := range symbols {
		emitSymbol(w, sym)
	}
	emitSymbol(w, symEOM)
	w.PadToByte()
	return w
}

func emitSymbol(w *bitio.Writer, sym rune) {
	if c, ok := sharedTable.codes[sym]; ok {
		w.WriteBits(c.code, c.length)
		return
	}
	esc := sharedTable.codes[symEscape]
	w.WriteBits(esc.code, esc.length)
	w.WriteBits(uint32(sym), escapeBits)
}

// huffmanDecode reverses huffmanEncode: walk the canonical tree bit by bit,
// expand tokens back to literal text, stop at EOM, and ignore any pad bits
// that follow. An undefined bit pattern (the tree falling off a nil child)
// or running out of bits mid-symbol is a CodecFailure, per spec.md §7.
func huffmanDecode(r *bitio.Reader) (string, error) {
	var symbols []rune
	for {
		sym, err := readSymbol(r)
		if err != nil {
			return "", err
		}
		if sym == symEOM {
			break
		}
		symbols = append(symbols, sym)
	}
	return detokenize(symbols), nil
}

func readSymbol(r *bitio.Reader) (rune, error) {
	n := sharedTable.root
	for {
		if n.isLeaf {
			if n.symbol == symEscape {
				v, ok := r.ReadBits(escapeBits)
				if !ok {
					return 0, fmt.Errorf("codec: ran out of bits mid-escape: %w", ErrCodecFailure)
				}
				return rune(v), nil
			}
			return n.symbol, nil
		}
		bit, ok := r.ReadBit()
		if !ok {
			return 0, fmt.Errorf("codec: ran out of bits mid-symbol: %w", ErrCodecFailure)
		}
		next := n.children[bit]
		if next == nil {
			return 0, fmt.Errorf("codec: undefined Huffman transition: %w", ErrCodecFailure)
		}
		n = next
	}
}
