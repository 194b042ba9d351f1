package huffman

import (
	"bytes"
	"math"
	"math/rand"
	"testing"
)

func bitsFromString(s string) []byte {
	bits := make([]byte, len(s))
	for i := range s {
		bits[i] = s[i] - '0'
	}
	return bits
}

func TestWordsNeeded(t *testing.T) {
	type testRow struct {
		count  uint32
		expect int
	}

	testData := [...]testRow{
		{0, 0},
		{1, 1},
		{31, 1},
		{32, 1},
		{33, 2},
		{64, 2},
		{65, 3},
		{math.MaxUint32, 1 << 27},
	}
	for _, row := range testData {
		if actual := WordsNeeded(row.count); actual != row.expect {
			t.Errorf("WordsNeeded(%d): expected %d, got %d", row.count, row.expect, actual)
		}
	}
}

func TestPack(t *testing.T) {
	type testRow struct {
		bits   string
		expect []uint32
	}

	testData := [...]testRow{
		{"", []uint32{}},
		{"1", []uint32{0x80000000}},
		{"0", []uint32{0x00000000}},
		{"10101111110000", []uint32{0xafc00000}},
		{"00000000000000000000000000000001", []uint32{0x00000001}},
		{"000000000000000000000000000000011", []uint32{0x00000001, 0x80000000}},
	}
	for _, row := range testData {
		t.Run(row.bits, func(t *testing.T) {
			bits := bitsFromString(row.bits)
			actual := Pack(bits, uint32(len(bits)))
			if len(actual) != len(row.expect) {
				t.Fatalf("expected %d words, got %d", len(row.expect), len(actual))
			}
			for i := range actual {
				if actual[i] != row.expect[i] {
					t.Errorf("word %d: expected %#08x, got %#08x", i, row.expect[i], actual[i])
				}
			}
			if back := Unpack(actual, uint32(len(bits))); !bytes.Equal(back, bits) {
				t.Errorf("Unpack: expected %v, got %v", bits, back)
			}
		})
	}
}

func TestPack_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for n := 0; n <= 200; n++ {
		bits := make([]byte, n)
		for i := range bits {
			bits[i] = byte(rng.Intn(2))
		}
		words := Pack(bits, uint32(n))
		if len(words) != WordsNeeded(uint32(n)) {
			t.Fatalf("n=%d: expected %d words, got %d", n, WordsNeeded(uint32(n)), len(words))
		}
		if back := Unpack(words, uint32(n)); !bytes.Equal(back, bits) {
			t.Fatalf("n=%d: round trip mismatch", n)
		}
	}
}

func TestAppendCode(t *testing.T) {
	bits := AppendCode(nil, MakeCode(2, 0x2))
	bits = AppendCode(bits, MakeCode(1, 0x0))
	bits = AppendCode(bits, MakeCode(3, 0x7))
	expect := bitsFromString("100111")
	if !bytes.Equal(bits, expect) {
		t.Errorf("wrong bits:\n\texpect: %v\n\tactual: %v", expect, bits)
	}
}
