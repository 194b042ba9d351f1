// Package huffman implements packman, a lossless byte-stream compressor built
// on plain (non-canonical) Huffman codes.
//
// A compressed stream carries everything needed to rebuild the code:
//
//     magic      2 bytes, 0x80 0xF0
//     tree       pre-order shape; 0x00 = internal node, 0x01 SYM = leaf
//     bitCount   uint32, big-endian
//     payload    ceil(bitCount/32) uint32 words, big-endian, MSB first
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
