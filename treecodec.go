package huffman

import (
	"errors"
	"fmt"
	"io"
)

// Tags used by the serialized tree.
const (
	tagInternal byte = 0x00
	tagLeaf     byte = 0x01
)

// WriteTree serializes the tree in pre-order: an internal node is the byte
// 0x00 followed by its left and right subtrees, a leaf is the byte 0x01
// followed by its Symbol.
func WriteTree(w io.ByteWriter, n *Node) error {
	if n.IsLeaf() {
		if err := w.WriteByte(tagLeaf); err != nil {
			return err
		}
		return w.WriteByte(byte(n.Symbol))
	}
	if err := w.WriteByte(tagInternal); err != nil {
		return err
	}
	if err := WriteTree(w, n.Left); err != nil {
		return err
	}
	return WriteTree(w, n.Right)
}

// Structural errors in a serialized tree.
var (
	errTreeTooDeep   = fmt.Errorf("serialized tree is deeper than %d levels", maxBitsPerCode)
	errDuplicateLeaf = errors.New("serialized tree repeats a leaf symbol")
)

// ReadTree deserializes a tree written by WriteTree.
//
// If a tag byte is neither 0x00 nor 0x01, that byte is pushed back onto r and
// ReadTree returns (nil, nil): the caller decides what a missing tree means.
// Running out of input returns io.ErrUnexpectedEOF.  A tree that names the
// same Symbol twice, or whose leaves lie deeper than the longest Code, is an
// error.
//
// Frequencies are not stored, so every node of the result has Freq 0.
//
func ReadTree(r io.ByteScanner) (*Node, error) {
	tr := treeReader{r: r}
	return tr.read(0)
}

type treeReader struct {
	r    io.ByteScanner
	seen [NumSymbols]bool
}

func (tr *treeReader) read(depth int) (*Node, error) {
	// A leaf at depth d gets a d-bit code.
	if depth > maxBitsPerCode {
		return nil, errTreeTooDeep
	}

	tag, err := tr.r.ReadByte()
	if err != nil {
		return nil, eofIsUnexpected(err)
	}

	switch tag {
	case tagInternal:
		left, err := tr.read(depth + 1)
		if err != nil || left == nil {
			return nil, err
		}
		right, err := tr.read(depth + 1)
		if err != nil || right == nil {
			return nil, err
		}
		return NewInternal(left, right), nil

	case tagLeaf:
		ch, err := tr.r.ReadByte()
		if err != nil {
			return nil, eofIsUnexpected(err)
		}
		if tr.seen[ch] {
			return nil, fmt.Errorf("%w: %d", errDuplicateLeaf, ch)
		}
		tr.seen[ch] = true
		return NewLeaf(Symbol(ch), 0), nil

	default:
		if err := tr.r.UnreadByte(); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

func eofIsUnexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
