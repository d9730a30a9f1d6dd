package codec

import "regexp"

// puaBase is the start of the Private Use Area range this module reserves
// for ham-token and shape-marker symbols, per spec.md §4.2/§9. The range is
// part of the protocol version ("ohm.text.v1").
const puaBase = 0xE000

// symEOM and symEscape are reserved PUA slots: end-of-message, and the
// escape marker that introduces a raw 21-bit scalar for codepoints outside
// the static alphabet.
const (
	symEOM    = rune(puaBase + 0)
	symEscape = rune(puaBase + 1)
)

// tokenEntry is one fixed-string dictionary entry.
type tokenEntry struct {
	text   string
	symbol rune
}

// shapeEntry recognizes a regular, open-ended shape (gridsquares, callsigns)
// anchored at the start of the remaining input. Matching such a shape emits
// a marker symbol (contributing no text on decode) immediately followed by
// the matched substring's own scalar symbols, per spec.md §4.2's
// "gridsquare/callsign regular shapes matched greedily".
type shapeEntry struct {
	name    string
	pattern *regexp.Regexp
	symbol  rune
}

// qCodes is the closed list of amateur-radio Q-codes recognized by the
// dictionary, per spec.md §4.2.
var qCodes = []string{
	"QRZ", "QRM", "QRO", "QRP", "QRS", "QRT",
	"QRB", "QSB", "QSL", "QSO", "QSY", "QTH",
}

// abbreviations is the closed list of amateur-radio abbreviations, per
// spec.md §4.2.
var abbreviations = []string{
	"CQ", "DE", "BK", "KN", "K", "AR", "SK", "YL", "OM", "73", "88",
}

// fixedTokens and shapeTokens are built once, in a fixed, deterministic
// order, so that the Huffman table (built from the same symbol universe)
// and the mode identifier "ohm.text.v1" are reproducible across builds.
// They are package-level var initializers rather than an init() func so
// that sharedTable's own initializer (internal/codec/huffman_table.go) is
// guaranteed by the language's dependency analysis to run after these are
// populated.
var fixedTokens = buildFixedTokens()
var shapeTokens = buildShapeTokens()

func buildFixedTokens() []tokenEntry {
	next := rune(puaBase + 2)
	var out []tokenEntry
	for _, q := range qCodes {
		out = append(out, tokenEntry{text: q, symbol: next})
		next++
		out = append(out, tokenEntry{text: q + "?", symbol: next})
		next++
	}
	for _, a := range abbreviations {
		out = append(out, tokenEntry{text: a, symbol: next})
		next++
	}
	return out
}

func buildShapeTokens() []shapeEntry {
	next := rune(puaBase + 2 + len(fixedTokens))
	return []shapeEntry{
		{
			name:    "gridsquare",
			pattern: regexp.MustCompile(`^[A-R]{2}[0-9]{2}([A-X]{2})?`),
			symbol:  next,
		},
		{
			name:    "callsign",
			pattern: regexp.MustCompile(`^[A-Z][0-9A-Z]?[0-9][A-Z]{1,4}`),
			symbol:  next + 1,
		},
	}
}

func isShapeSymbol(r rune) bool {
	for _, s := range shapeTokens {
		if s.symbol == r {
			return true
		}
	}
	return false
}
