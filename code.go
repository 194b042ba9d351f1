package huffman

import (
	"fmt"

	"github.com/chronos-tachyon/assert"
)

// maxBitsPerCode is the longest Code that can be represented.  Any input whose
// total bit count fits the 32-bit header field produces codes well below this.
const maxBitsPerCode = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant of
	// the Size low-order bits is the first bit, so a Code can be handed
	// directly to an MSB-first bit writer.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	assert.Assertf(size <= maxBitsPerCode, "size %d > maxBitsPerCode %d", size, maxBitsPerCode)
	return Code{Size: size, Bits: bits}
}

// Append returns the Code extended by one trailing bit.
func (hc Code) Append(bit byte) Code {
	assert.Assertf(hc.Size < maxBitsPerCode, "cannot extend a %d-bit code", hc.Size)
	return Code{Size: hc.Size + 1, Bits: hc.Bits<<1 | uint64(bit&1)}
}

// Bit returns the i'th bit of the Code, counting from the first bit.
func (hc Code) Bit(i byte) byte {
	assert.Assertf(i < hc.Size, "bit index %d out of range for %d-bit code", i, hc.Size)
	return byte(hc.Bits>>(hc.Size-1-i)) & 1
}

// HasPrefix reports whether prefix is a (possibly equal) leading part of hc.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	return hc.Bits>>(hc.Size-prefix.Size) == prefix.Bits
}

// String renders the Code as its bits, first bit leftmost, in double quotes.
func (hc Code) String() string {
	buf := make([]byte, 0, int(hc.Size)+2)
	buf = append(buf, '"')
	for i := byte(0); i < hc.Size; i++ {
		buf = append(buf, '0'+hc.Bit(i))
	}
	return string(append(buf, '"'))
}

var _ fmt.Stringer = Code{}
