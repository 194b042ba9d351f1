package huffman

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Magic is the two-byte value, stored big-endian, that starts every
// compressed stream.
const Magic uint16 = 0x80F0

const magicSize = 2

// HasMagic returns true iff b starts with the magic number.
func HasMagic(b []byte) bool {
	return len(b) >= magicSize && binary.BigEndian.Uint16(b) == Magic
}

// writeHeader writes the magic number, the serialized tree and the payload
// bit count.
func writeHeader(w *bufio.Writer, root *Node, bitCount uint32) error {
	var tmp [4]byte
	binary.BigEndian.PutUint16(tmp[:magicSize], Magic)
	if _, err := w.Write(tmp[:magicSize]); err != nil {
		return err
	}
	if err := WriteTree(w, root); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(tmp[:], bitCount)
	_, err := w.Write(tmp[:])
	return err
}

// readHeader consumes the magic number, the serialized tree and the payload
// bit count.
func readHeader(r *bufio.Reader) (*Node, uint32, error) {
	var tmp [4]byte
	if _, err := io.ReadFull(r, tmp[:magicSize]); err != nil {
		return nil, 0, fmt.Errorf("%w: reading magic number: %v", ErrMalformedHeader, err)
	}
	if !HasMagic(tmp[:magicSize]) {
		return nil, 0, fmt.Errorf("%w: bad magic number %#04x", ErrMalformedHeader, binary.BigEndian.Uint16(tmp[:magicSize]))
	}

	root, err := ReadTree(r)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	if root == nil {
		return nil, 0, ErrMalformedHeader
	}

	if _, err := io.ReadFull(r, tmp[:]); err != nil {
		return nil, 0, fmt.Errorf("%w: reading bit count: %v", ErrTruncatedPayload, err)
	}
	return root, binary.BigEndian.Uint32(tmp[:]), nil
}

func writeWords(w io.Writer, words []uint32) error {
	var tmp [4]byte
	for _, word := range words {
		binary.BigEndian.PutUint32(tmp[:], word)
		if _, err := w.Write(tmp[:]); err != nil {
			return err
		}
	}
	return nil
}

// readWords reads n words.  The slice grows as words arrive, so a corrupt
// bit count fails on the short read instead of on the allocation.
func readWords(r io.Reader, n int) ([]uint32, error) {
	var tmp [4]byte
	words := make([]uint32, 0, min(n, 4096))
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(r, tmp[:]); err != nil {
			return nil, fmt.Errorf("%w: word %d of %d: %v", ErrTruncatedPayload, i, n, err)
		}
		words = append(words, binary.BigEndian.Uint32(tmp[:]))
	}
	return words, nil
}

