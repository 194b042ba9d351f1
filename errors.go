package huffman

import (
	"errors"
)

// Error kinds reported by this package.  Every error returned by Compress,
// Decompress and Process wraps exactly one of these; test with errors.Is.
var (
	// ErrInputNotFound means the source could not be opened or read.
	ErrInputNotFound = errors.New("input cannot be read")

	// ErrEmptyInput means there were no bytes to encode.
	ErrEmptyInput = errors.New("input has no contents")

	// ErrMalformedHeader means the magic number or the serialized tree
	// was missing or corrupt.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrTruncatedPayload means the bit count or payload words were
	// missing or short.
	ErrTruncatedPayload = errors.New("no data found after binary tree")

	// ErrTruncatedStream means the bits ran out in the middle of a code.
	ErrTruncatedStream = errors.New("bit stream ends in the middle of a code")

	// ErrCorruptStream means a bit could not be matched against the tree.
	ErrCorruptStream = errors.New("bit stream does not match the tree")

	// ErrOutputWrite means the destination could not be written.
	ErrOutputWrite = errors.New("can't write to file")

	// ErrTooLarge means the encoded bit count would overflow its 32-bit
	// header field.
	ErrTooLarge = errors.New("input too large to encode")

	// ErrEmptyQueue is returned by Heap operations on an empty heap.
	ErrEmptyQueue = errors.New("heap is empty")
)
