// Package bitstream provides in-memory, bit-addressed stream
// implementations of the bitcodec reader and writer contracts.
//
// Bits are packed MSB-first: the bit sequence 0 1 0 0 1 1 0 1 packs into a
// single byte with value 0x4D. Positions count bits from the stream origin
// and nothing assumes byte alignment.
package bitstream
