package bitstream

import (
	"github.com/wippyai/bitcodec"
	"github.com/wippyai/bitcodec/errors"
)

// Reader reads bit-granular values from an in-memory byte slice, MSB-first,
// with a bit-addressed cursor. It implements bitcodec.BitReader.
type Reader struct {
	data []byte
	pos  int64
}

// NewReader creates a Reader over data. The slice is not copied; the caller
// must not mutate it while the reader is in use.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the stream length in bits.
func (r *Reader) Len() int64 {
	return int64(len(r.data)) * 8
}

// Position returns the current bit position.
func (r *Reader) Position() int64 {
	return r.pos
}

// Move shifts the cursor by offset bits. The target must lie in
// [0, Len()]; on failure the cursor is unchanged.
func (r *Reader) Move(offset int64) error {
	target := r.pos + offset
	if target < 0 || target > r.Len() {
		return errors.New(errors.PhaseStream, errors.KindStreamError).
			Position(r.pos).
			Detail("move by %d bits to %d outside stream of %d bits", offset, target, r.Len()).
			Build()
	}
	r.pos = target
	return nil
}

// Read returns the next bits bits and advances the cursor. On failure the
// cursor is unchanged.
func (r *Reader) Read(bits int64) (bitcodec.Value, error) {
	if bits < 0 {
		return bitcodec.Value{}, errors.ArgumentInvalid(errors.PhaseStream, "negative read of %d bits", bits)
	}
	if r.pos+bits > r.Len() {
		return bitcodec.Value{}, errors.New(errors.PhaseStream, errors.KindStreamError).
			Position(r.pos).
			Detail("read of %d bits past end of stream (%d bits)", bits, r.Len()).
			Build()
	}
	buf := make([]byte, (bits+7)/8)
	for i := int64(0); i < bits; i++ {
		at := r.pos + i
		if r.data[at/8]&(1<<uint(7-at%8)) != 0 {
			buf[i/8] |= 1 << uint(7-i%8)
		}
	}
	r.pos += bits
	return bitcodec.NewValue(buf, bits), nil
}
