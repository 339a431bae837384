package bitstream

import (
	"github.com/wippyai/bitcodec"
	"github.com/wippyai/bitcodec/errors"
)

// Writer writes bit-granular values into a growable in-memory buffer,
// MSB-first, with a bit-addressed cursor. Moving forward past the written
// extent leaves a zero-filled gap. It implements bitcodec.BitWriter.
type Writer struct {
	data []byte
	bits int64 // written extent in bits
	pos  int64
}

// NewWriter creates an empty Writer positioned at bit 0.
func NewWriter() *Writer {
	return &Writer{}
}

// Len returns the written extent in bits.
func (w *Writer) Len() int64 {
	return w.bits
}

// Position returns the current bit position.
func (w *Writer) Position() int64 {
	return w.pos
}

// Move shifts the cursor by offset bits. The target must be non-negative;
// it may lie past the written extent.
func (w *Writer) Move(offset int64) error {
	target := w.pos + offset
	if target < 0 {
		return errors.New(errors.PhaseStream, errors.KindStreamError).
			Position(w.pos).
			Detail("move by %d bits to negative position %d", offset, target).
			Build()
	}
	w.pos = target
	return nil
}

// Write stores v at the cursor, overwriting any previously written bits,
// and advances the cursor by v.Len().
func (w *Writer) Write(v bitcodec.Value) error {
	end := w.pos + v.Len()
	if need := int((end + 7) / 8); need > len(w.data) {
		grown := make([]byte, need)
		copy(grown, w.data)
		w.data = grown
	}
	for i := int64(0); i < v.Len(); i++ {
		at := w.pos + i
		mask := byte(1) << uint(7-at%8)
		if v.Bit(i) != 0 {
			w.data[at/8] |= mask
		} else {
			w.data[at/8] &^= mask
		}
	}
	w.pos = end
	if end > w.bits {
		w.bits = end
	}
	return nil
}

// Bytes returns the written stream padded with zero bits to a whole byte.
func (w *Writer) Bytes() []byte {
	out := make([]byte, (w.bits+7)/8)
	copy(out, w.data)
	return out
}

// Value returns the written stream as a single bit value.
func (w *Writer) Value() bitcodec.Value {
	return bitcodec.NewValue(w.data, w.bits)
}
