package codec

import (
	"container/heap"
	"sort"
)

// symbolFreq is one (symbol, weight) entry in the fixed frequency table that
// the canonical Huffman code is built from. The table, and therefore the
// resulting code, is part of the "ohm.text.v1" protocol version: both
// encoder and decoder must ship the identical table.
type symbolFreq struct {
	symbol rune
	weight int
}

// buildFrequencyTable assembles the full, deterministic symbol universe:
// every ASCII octet, the reserved EOM/escape markers, and every token/shape
// symbol. Weights are a rough approximation of English amateur-radio text
// (space and common letters weigh heavily; punctuation and control codes are
// rare but present, so any byte can still be escaped through if needed).
func buildFrequencyTable() []symbolFreq {
	weight := make(map[rune]int, 160)

	for b := 0; b < 128; b++ {
		weight[rune(b)] = 1
	}
	common := map[rune]int{
		' ': 700, 'E': 130, 'T': 95, 'A': 82, 'O': 77, 'I': 70, 'N': 68,
		'S': 63, 'H': 61, 'R': 60, 'D': 43, 'L': 40, 'U': 29, 'C': 28,
		'M': 24, 'W': 24, 'F': 22, 'G': 20, 'Y': 20, 'P': 19, 'B': 15,
		'V': 10, 'K': 8, 'J': 2, 'X': 2, 'Q': 1, 'Z': 1,
		'e': 130, 't': 95, 'a': 82, 'o': 77, 'i': 70, 'n': 68,
		's': 63, 'h': 61, 'r': 60, 'd': 43, 'l': 40, 'u': 29, 'c': 28,
		'm': 24, 'w': 24, 'f': 22, 'g': 20, 'y': 20, 'p': 19, 'b': 15,
		'v': 10, 'k': 8, 'j': 2, 'x': 2, 'q': 1, 'z': 1,
		'.': 25, ',': 20, '?': 15, '!': 8, '-': 18, '/': 12, ':': 6,
		'\n': 5, '\r': 2, '\t': 2,
	}
	for r, w := range common {
		weight[r] = w
	}
	for d := '0'; d <= '9'; d++ {
		weight[d] = 15
	}

	weight[symEOM] = 3
	weight[symEscape] = 2

	for _, e := range fixedTokens {
		weight[e.symbol] = 9
	}
	for _, s := range shapeTokens {
		weight[s.symbol] = 6
	}

	out := make([]symbolFreq, 0, len(weight))
	for sym, w := range weight {
		out = append(out, symbolFreq{symbol: sym, weight: w})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].symbol < out[j].symbol })
	return out
}

// huffNode is one node of the construction-time Huffman tree.
type huffNode struct {
	weight      int
	symbol      rune
	isLeaf      bool
	left, right *huffNode
	seq         int // insertion order, for deterministic tie-breaking
}

type nodeHeap []*huffNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight < h[j].weight
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)        { *h = append(*h, x.(*huffNode)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// codeLengths runs the standard Huffman construction over freqs and returns
// the resulting code length for every symbol.
func codeLengths(freqs []symbolFreq) map[rune]int {
	h := make(nodeHeap, 0, len(freqs))
	seq := 0
	for _, f := range freqs {
		h = append(h, &huffNode{weight: f.weight, symbol: f.symbol, isLeaf: true, seq: seq})
		seq++
	}
	heap.Init(&h)

	if len(h) == 1 {
		only := h[0]
		return map[rune]int{only.symbol: 1}
	}

	for h.Len() > 1 {
		a := heap.Pop(&h).(*huffNode)
		b := heap.Pop(&h).(*huffNode)
		parent := &huffNode{weight: a.weight + b.weight, left: a, right: b, seq: seq}
		seq++
		heap.Push(&h, parent)
	}

	lengths := make(map[rune]int, len(freqs))
	var walk func(n *huffNode, depth int)
	walk = func(n *huffNode, depth int) {
		if n.isLeaf {
			if depth == 0 {
				depth = 1
			}
			lengths[n.symbol] = depth
			return
		}
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	walk(h[0], 0)
	return lengths
}

// canonicalCode is the assigned (length, code) pair for one symbol.
type canonicalCode struct {
	length int
	code   uint32
}

// buildCanonicalCodes turns a length table into canonical codes: symbols are
// ordered by (length, symbol value), and codes are assigned as consecutive
// integers, left-shifted whenever the length increases. This is the same
// rule DEFLATE and most canonical-Huffman formats use, and it lets encoder
// and decoder agree from the length table alone.
func buildCanonicalCodes(lengths map[rune]int) map[rune]canonicalCode {
	type entry struct {
		symbol rune
		length int
	}
	entries := make([]entry, 0, len(lengths))
	for sym, l := range lengths {
		entries = append(entries, entry{symbol: sym, length: l})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].length != entries[j].length {
			return entries[i].length < entries[j].length
		}
		return entries[i].symbol < entries[j].symbol
	})

	codes := make(map[rune]canonicalCode, len(entries))
	code := uint32(0)
	prevLen := 0
	for _, e := range entries {
		code <<= uint(e.length - prevLen)
		codes[e.symbol] = canonicalCode{length: e.length, code: code}
		code++
		prevLen = e.length
	}
	return codes
}

// huffmanTable is the full built table: encode side (symbol -> code) and
// decode side (a bit-addressed trie).
type huffmanTable struct {
	codes map[rune]canonicalCode
	root  *trieNode
}

type trieNode struct {
	symbol   rune
	isLeaf   bool
	children [2]*trieNode
}

func newHuffmanTable() *huffmanTable {
	freqs := buildFrequencyTable()
	lengths := codeLengths(freqs)
	codes := buildCanonicalCodes(lengths)

	root := &trieNode{}
	for sym, c := range codes {
		n := root
		for i := c.length - 1; i >= 0; i-- {
			bit := (c.code >> uint(i)) & 1
			if n.children[bit] == nil {
				n.children[bit] = &trieNode{}
			}
			n = n.children[bit]
		}
		n.isLeaf = true
		n.symbol = sym
	}

	return &huffmanTable{codes: codes, root: root}
}

// sharedTable is the fixed, versioned canonical Huffman table for mode
// "ohm.text.v1". It is built once, deterministically, at package init.
var sharedTable = newHuffmanTable()
