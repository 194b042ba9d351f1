package huffman

import (
	"math"
)

// Symbol represents one byte of input.  Every byte value is a valid symbol.
type Symbol byte

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(math.MaxUint8)

// NumSymbols is the size of the alphabet.
const NumSymbols = int(MaxSymbol) + 1
