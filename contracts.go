package bitcodec

import (
	"github.com/wippyai/bitcodec/fieldpath"
)

// Seeker exposes a bit-addressed cursor over a stream. Position counts bits
// from the stream origin; Move shifts the cursor by a signed bit offset and
// fails with a stream error when the target is outside the stream.
type Seeker interface {
	Position() int64
	Move(offset int64) error
}

// BitReader reads bit-granular values from a stream, advancing the cursor.
type BitReader interface {
	Seeker
	Read(bits int64) (Value, error)
}

// BitWriter writes bit-granular values to a stream, advancing the cursor by
// the value's length.
type BitWriter interface {
	Seeker
	Write(v Value) error
}

// FieldReader reads typed values from a logical field tree. Used by the
// encoding direction.
type FieldReader interface {
	ReadField(path fieldpath.Path) (any, error)
}

// FieldWriter writes typed values into a logical field tree. Used by the
// decoding direction.
type FieldWriter interface {
	WriteField(path fieldpath.Path, value any) error
}

// EvalContext is the read-only view of a coding context that late-bound
// expressions and converters evaluate against.
type EvalContext interface {
	Path() fieldpath.Path
	Position() int64
	Variable(name string) (any, error)
	FieldMapping(path fieldpath.Path) (FieldMapping, error)
}

// Converter translates between the raw bit payload of a field and its typed
// interpretation.
type Converter interface {
	FromBits(ctx EvalContext, raw Value) (any, error)
	ToBits(ctx EvalContext, value any, bits int64) (Value, error)
}

// FieldMapping records that a raw bit value at a bit position produced a
// typed value bound to a logical path. Path is absolute and never the root.
type FieldMapping struct {
	Path      fieldpath.Path
	Position  int64
	Raw       Value
	Converted any
}
