package huffman

import (
	"github.com/chronos-tachyon/assert"
)

// bitsPerWord is the width of one packed payload word.
const bitsPerWord = 32

// WordsNeeded returns the number of 32-bit words needed to hold count bits.
func WordsNeeded(count uint32) int {
	return int((uint64(count) + bitsPerWord - 1) / bitsPerWord)
}

// wordIndex and wordMask locate bit i: word i/32, MSB first within the word.
func wordIndex(i uint32) uint32 {
	return i / bitsPerWord
}

func wordMask(i uint32) uint32 {
	return uint32(1) << (bitsPerWord - 1 - i%bitsPerWord)
}

// AppendCode appends the bits of hc, one 0 or 1 per byte, to bits.
func AppendCode(bits []byte, hc Code) []byte {
	for i := byte(0); i < hc.Size; i++ {
		bits = append(bits, hc.Bit(i))
	}
	return bits
}

// Pack packs the first count entries of bits (each 0 or 1) into 32-bit
// words.  Bit 0 is the most significant bit of word 0.
func Pack(bits []byte, count uint32) []uint32 {
	assert.Assertf(uint64(len(bits)) >= uint64(count), "Pack: have %d bits, want %d", len(bits), count)
	words := make([]uint32, WordsNeeded(count))
	for i := uint32(0); i < count; i++ {
		if bits[i] == 1 {
			words[wordIndex(i)] |= wordMask(i)
		}
	}
	return words
}

// Unpack is the inverse of Pack: it returns exactly count bits, one 0 or 1
// per byte.
func Unpack(words []uint32, count uint32) []byte {
	assert.Assertf(len(words) >= WordsNeeded(count), "Unpack: have %d words, want %d", len(words), WordsNeeded(count))
	bits := make([]byte, count)
	for i := uint32(0); i < count; i++ {
		if words[wordIndex(i)]&wordMask(i) != 0 {
			bits[i] = 1
		}
	}
	return bits
}
