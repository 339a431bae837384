package bitcodec

import (
	"fmt"

	"github.com/wippyai/bitcodec/errors"
)

// Value is an immutable string of bits, packed MSB-first. The zero value is
// the empty bit string.
type Value struct {
	data string
	bits int64
}

// NewValue builds a Value from the first bits bits of data, MSB-first.
// Panics if bits is negative or exceeds the data length; that is a
// programmer error, not a data error.
func NewValue(data []byte, bits int64) Value {
	if bits < 0 || bits > int64(len(data))*8 {
		panic(fmt.Sprintf("bitcodec: NewValue with %d bits over %d bytes", bits, len(data)))
	}
	n := int((bits + 7) / 8)
	buf := make([]byte, n)
	copy(buf, data[:n])
	maskTail(buf, bits)
	return Value{data: string(buf), bits: bits}
}

// FromUint64 packs the low-order bits bits of v, MSB-first. Panics if bits
// is negative or greater than 64.
func FromUint64(v uint64, bits int64) Value {
	if bits < 0 || bits > 64 {
		panic(fmt.Sprintf("bitcodec: FromUint64 with %d bits", bits))
	}
	if bits < 64 {
		v &= (1 << uint(bits)) - 1
	}
	n := int((bits + 7) / 8)
	buf := make([]byte, n)
	for i := int64(0); i < bits; i++ {
		if v&(1<<uint(bits-1-i)) != 0 {
			buf[i/8] |= 1 << uint(7-i%8)
		}
	}
	return Value{data: string(buf), bits: bits}
}

func maskTail(buf []byte, bits int64) {
	if rem := bits % 8; rem != 0 && len(buf) > 0 {
		buf[len(buf)-1] &= 0xFF << uint(8-rem)
	}
}

// Len returns the length in bits.
func (v Value) Len() int64 {
	return v.bits
}

// Bytes returns the packed bits as a fresh byte slice, MSB-first, with
// unused trailing bits zero.
func (v Value) Bytes() []byte {
	return []byte(v.data)
}

// Bit returns bit i (0 or 1), counting from the most significant bit.
// Panics if i is out of range.
func (v Value) Bit(i int64) byte {
	if i < 0 || i >= v.bits {
		panic(fmt.Sprintf("bitcodec: bit index %d out of %d", i, v.bits))
	}
	if v.data[i/8]&(1<<uint(7-i%8)) != 0 {
		return 1
	}
	return 0
}

// Uint64 interprets the bits as an unsigned big-endian integer. Fails when
// the value is wider than 64 bits.
func (v Value) Uint64() (uint64, error) {
	if v.bits > 64 {
		return 0, errors.New(errors.PhaseEval, errors.KindConversionError).
			Detail("value of %d bits does not fit in uint64", v.bits).
			Build()
	}
	var out uint64
	for i := int64(0); i < v.bits; i++ {
		out = out<<1 | uint64(v.Bit(i))
	}
	return out, nil
}

// Equal reports whether both values hold the same bit string.
func (v Value) Equal(o Value) bool {
	return v.bits == o.bits && v.data == o.data
}

// Concat appends the given values after v, in order.
func (v Value) Concat(vs ...Value) Value {
	total := v.bits
	for _, o := range vs {
		total += o.bits
	}
	buf := make([]byte, (total+7)/8)
	pos := appendBits(buf, 0, v)
	for _, o := range vs {
		pos = appendBits(buf, pos, o)
	}
	return Value{data: string(buf), bits: total}
}

func appendBits(buf []byte, at int64, v Value) int64 {
	for i := int64(0); i < v.bits; i++ {
		if v.Bit(i) != 0 {
			buf[(at+i)/8] |= 1 << uint(7-(at+i)%8)
		}
	}
	return at + v.bits
}

// String formats the value as hex with its bit length, e.g. "0xa5/8".
func (v Value) String() string {
	return fmt.Sprintf("0x%x/%d", v.data, v.bits)
}
