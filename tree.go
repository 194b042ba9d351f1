package huffman

import (
	"bufio"
	"fmt"
	"io"
)

// Node is one node of a Huffman tree.  A leaf carries a real Symbol and no
// children; an internal node has exactly two children and its Symbol is
// unused (always zero).
type Node struct {
	Symbol Symbol
	Freq   uint64
	Left   *Node
	Right  *Node
}

// NewLeaf constructs a leaf node.
func NewLeaf(symbol Symbol, freq uint64) *Node {
	return &Node{Symbol: symbol, Freq: freq}
}

// NewInternal constructs an internal node whose frequency is the sum of its
// children's.
func NewInternal(left, right *Node) *Node {
	return &Node{Freq: left.Freq + right.Freq, Left: left, Right: right}
}

// IsLeaf returns true iff this node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Leaves returns the number of leaves below (and including) this node.
func (n *Node) Leaves() int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return 1
	}
	return n.Left.Leaves() + n.Right.Leaves()
}

// Frequencies counts the occurrences of each Symbol.
type Frequencies [NumSymbols]uint64

// CountFrequencies scans r to EOF and returns the per-Symbol counts together
// with the total number of bytes read.
func CountFrequencies(r io.Reader) (*Frequencies, uint64, error) {
	var freqs Frequencies
	var total uint64
	br := bufio.NewReader(r)
	for {
		ch, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrInputNotFound, err)
		}
		freqs[ch]++
		total++
	}
	return &freqs, total, nil
}

// Distinct returns the number of symbols with a non-zero count.
func (f *Frequencies) Distinct() int {
	var n int
	for _, freq := range f {
		if freq != 0 {
			n++
		}
	}
	return n
}

func lessFreq(a, b *Node) bool {
	return a.Freq < b.Freq
}

func printNode(w io.Writer, n *Node) {
	fmt.Fprintf(w, "Frequency: %d, Symbol: %d\n", n.Freq, n.Symbol)
}

// NewNodeHeap returns the min-heap of leaves the tree builder consumes: one
// leaf per Symbol with a non-zero count, inserted in ascending Symbol order.
func NewNodeHeap(freqs *Frequencies) *Heap[*Node] {
	h := NewHeap[*Node](freqs.Distinct(), lessFreq, printNode)
	for symbol, freq := range freqs {
		if freq != 0 {
			h.Insert(NewLeaf(Symbol(symbol), freq))
		}
	}
	return h
}

// BuildTree reduces a heap of nodes to a single Huffman tree by repeatedly
// joining the two lowest-frequency nodes.  The first node removed becomes
// the left child.  A heap holding a single leaf yields that leaf as the root.
func BuildTree(h *Heap[*Node]) (*Node, error) {
	for h.Len() >= 2 {
		n1, _ := h.RemoveTop()
		n2, _ := h.RemoveTop()
		h.Insert(NewInternal(n1, n2))
	}
	root, err := h.RemoveTop()
	if err != nil {
		return nil, fmt.Errorf("%w: no symbols to build a tree from", ErrEmptyInput)
	}
	return root, nil
}
