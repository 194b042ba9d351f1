package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// CodeTable maps each Symbol to its Huffman code.  It is derived from a tree
// by walking it root-to-leaf, appending 0 when descending left and 1 when
// descending right.
type CodeTable struct {
	codes   [NumSymbols]Code
	present [NumSymbols]bool
	count   int
	minSize byte
	maxSize byte
}

// NewCodeTable derives the CodeTable for the given tree.
//
// A tree that is a single leaf would give its only symbol an empty code.
// That symbol is assigned the one-bit code "0" instead, so that every
// occurrence still costs a bit and can be counted back out by the decoder.
//
func NewCodeTable(root *Node) *CodeTable {
	assert.Assertf(root != nil, "cannot derive codes from a nil tree")

	t := &CodeTable{}
	if root.IsLeaf() {
		t.set(root.Symbol, MakeCode(1, 0))
		return t
	}

	// Walk the tree with an explicit stack rather than recursion.
	//
	// stackItem.x tracks where we are in the walk of each internal node:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children

	type stackItem struct {
		n  *Node
		hc Code
		x  byte
	}

	stack := make([]stackItem, 0, 16)

	processChild := func(child *Node, hc Code) {
		if child.IsLeaf() {
			t.set(child.Symbol, hc)
			return
		}
		stack = append(stack, stackItem{n: child, hc: hc})
	}

	stack = append(stack, stackItem{n: root})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		switch x {
		case 0:
			processChild(top.n.Left, top.hc.Append(0))
		case 1:
			processChild(top.n.Right, top.hc.Append(1))
		case 2:
			stack = stack[:len(stack)-1]
		}
	}
	return t
}

func (t *CodeTable) set(symbol Symbol, hc Code) {
	assert.Assertf(!t.present[symbol], "symbol %d appears twice in the tree", symbol)
	t.codes[symbol] = hc
	t.present[symbol] = true
	if t.count == 0 || t.minSize > hc.Size {
		t.minSize = hc.Size
	}
	if t.count == 0 || t.maxSize < hc.Size {
		t.maxSize = hc.Size
	}
	t.count++
}

// Encode returns the code for a Symbol.  The boolean is false if the Symbol
// does not appear in the tree.
func (t *CodeTable) Encode(symbol Symbol) (Code, bool) {
	return t.codes[symbol], t.present[symbol]
}

// Len returns the number of symbols with a code.
func (t *CodeTable) Len() int {
	return t.count
}

// MinSize is the bit length of the shortest legal code.
func (t *CodeTable) MinSize() byte {
	return t.minSize
}

// MaxSize is the bit length of the longest legal code.
func (t *CodeTable) MaxSize() byte {
	return t.maxSize
}

// SizeBySymbol returns an array containing the bit length for each Symbol in
// the alphabet, 0 for symbols without a code.
func (t *CodeTable) SizeBySymbol() []byte {
	out := make([]byte, NumSymbols)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		out[symbol] = t.codes[symbol].Size
	}
	return out
}

// BitCount returns the total number of payload bits needed to encode input
// with the given symbol frequencies.
func (t *CodeTable) BitCount(freqs *Frequencies) uint64 {
	var total uint64
	for symbol, freq := range freqs {
		total += freq * uint64(t.codes[symbol].Size)
	}
	return total
}

// Dump writes a programmer-readable debugging dump of the CodeTable to the
// given writer.
func (t *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.maxSize)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if t.present[symbol] {
			fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, t.codes[symbol])
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
