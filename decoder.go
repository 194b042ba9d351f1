package huffman

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// Matcher turns a stream of bits back into Symbols, one bit at a time.
type Matcher interface {
	// Feed consumes one bit (0 or 1).  When the bits fed since the last
	// match complete a code, Feed returns that code's Symbol and true.
	Feed(bit byte) (Symbol, bool, error)

	// Pending returns true iff bits have been fed that do not yet form a
	// complete code.
	Pending() bool

	// Reset discards any pending bits.
	Reset()
}

// Decoder is a Matcher that walks the Huffman tree: each bit advances a
// cursor one level down, and reaching a leaf emits its Symbol and returns the
// cursor to the root.
type Decoder struct {
	root   *Node
	cursor *Node
}

// NewDecoder constructs a Decoder for the given tree.
func NewDecoder(root *Node) *Decoder {
	assert.Assertf(root != nil, "cannot decode with a nil tree")
	return &Decoder{root: root, cursor: root}
}

// Feed implements Matcher.
func (d *Decoder) Feed(bit byte) (Symbol, bool, error) {
	// A single-leaf tree has the one-bit code "0".
	if d.root.IsLeaf() {
		if bit != 0 {
			return 0, false, ErrCorruptStream
		}
		return d.root.Symbol, true, nil
	}

	if bit == 0 {
		d.cursor = d.cursor.Left
	} else {
		d.cursor = d.cursor.Right
	}
	if !d.cursor.IsLeaf() {
		return 0, false, nil
	}
	symbol := d.cursor.Symbol
	d.cursor = d.root
	return symbol, true, nil
}

// Pending implements Matcher.
func (d *Decoder) Pending() bool {
	return d.cursor != d.root
}

// Reset implements Matcher.
func (d *Decoder) Reset() {
	d.cursor = d.root
}

// Dump writes a programmer-readable debugging dump of the Decoder's tree to
// the given writer, one line per leaf, ordered by code.
func (d *Decoder) Dump(w io.Writer) (int64, error) {
	t := NewCodeTable(d.root)
	keys := make([]Code, 0, t.Len())
	symbols := make(map[Code]Symbol, t.Len())
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if hc, found := t.Encode(Symbol(symbol)); found {
			keys = append(keys, hc)
			symbols[hc] = Symbol(symbol)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Size != keys[j].Size {
			return keys[i].Size < keys[j].Size
		}
		return keys[i].Bits < keys[j].Bits
	})

	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.MaxSize())
	for _, hc := range keys {
		fmt.Fprintf(&buf, "\tDecode(%s) = %d\n", hc, symbols[hc])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

var _ Matcher = (*Decoder)(nil)

// ScanDecoder is a Matcher that accumulates bits and, after every bit,
// searches the whole CodeTable for an exact match.  It is slower than
// Decoder by a factor of the alphabet size.
type ScanDecoder struct {
	table   *CodeTable
	current Code
}

// NewScanDecoder constructs a ScanDecoder over the given CodeTable.
func NewScanDecoder(table *CodeTable) *ScanDecoder {
	assert.Assertf(table != nil, "cannot decode with a nil CodeTable")
	return &ScanDecoder{table: table}
}

// Feed implements Matcher.
func (d *ScanDecoder) Feed(bit byte) (Symbol, bool, error) {
	d.current = d.current.Append(bit)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if hc, found := d.table.Encode(Symbol(symbol)); found && hc == d.current {
			d.current = Code{}
			return Symbol(symbol), true, nil
		}
	}
	if d.current.Size >= d.table.MaxSize() {
		return 0, false, ErrCorruptStream
	}
	return 0, false, nil
}

// Pending implements Matcher.
func (d *ScanDecoder) Pending() bool {
	return d.current.Size != 0
}

// Reset implements Matcher.
func (d *ScanDecoder) Reset() {
	d.current = Code{}
}

var _ Matcher = (*ScanDecoder)(nil)

// DecodeBits feeds every bit to m and writes each decoded Symbol to w.
func DecodeBits(m Matcher, bits []byte, w io.ByteWriter) error {
	for _, bit := range bits {
		if err := feedOne(m, bit, w); err != nil {
			return err
		}
	}
	if m.Pending() {
		return ErrTruncatedStream
	}
	return nil
}

// DecodeStream reads count bits from r, most significant bit of each byte
// first, feeds them to m and writes each decoded Symbol to w.
func DecodeStream(m Matcher, r *bitio.Reader, count uint32, w io.ByteWriter) error {
	for i := uint32(0); i < count; i++ {
		b, err := r.ReadBool()
		if err != nil {
			return fmt.Errorf("%w: bit %d of %d: %v", ErrTruncatedPayload, i, count, err)
		}
		var bit byte
		if b {
			bit = 1
		}
		if err := feedOne(m, bit, w); err != nil {
			return err
		}
	}
	if m.Pending() {
		return ErrTruncatedStream
	}
	return nil
}

func feedOne(m Matcher, bit byte, w io.ByteWriter) error {
	symbol, ok, err := m.Feed(bit)
	if err != nil {
		return err
	}
	if ok {
		if err := w.WriteByte(byte(symbol)); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputWrite, err)
		}
	}
	return nil
}
