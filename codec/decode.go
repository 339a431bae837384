package codec

import (
	"github.com/wippyai/bitcodec"
	"github.com/wippyai/bitcodec/errors"
	"github.com/wippyai/bitcodec/fieldpath"
)

// DecodingContext binds a bit-stream reader and a logical field writer.
// MapField reads raw bits, converts them and records the result; field
// writes are deferred and only reach the wrapped field writer when the
// outermost transaction commits.
type DecodingContext struct {
	codingState
	reader bitcodec.BitReader
	fields *DeferredFieldWriter
}

// NewDecodingContext creates a decoding context over reader and fields.
// Panics when either is nil; that is a programmer error.
func NewDecodingContext(reader bitcodec.BitReader, fields bitcodec.FieldWriter) *DecodingContext {
	if reader == nil {
		panic("codec: NewDecodingContext with nil reader")
	}
	return &DecodingContext{
		codingState: newCodingState(errors.PhaseDecode),
		reader:      reader,
		fields:      NewDeferredFieldWriter(fields),
	}
}

// Position forwards the reader's bit cursor.
func (c *DecodingContext) Position() int64 {
	return c.reader.Position()
}

// Move forwards to the reader.
func (c *DecodingContext) Move(offset int64) error {
	return ensureErrorNil(errors.PhaseDecode, errors.KindStreamError, c.reader.Move(offset))
}

// MapField reads length bits, converts them and binds the result at the
// current path combined with path. A converter failure substitutes def when
// one is supplied.
func (c *DecodingContext) MapField(path fieldpath.Path, length int64, conv bitcodec.Converter, def any) error {
	target, err := c.checkMapFieldArgs(path, length, conv)
	if err != nil {
		return err
	}

	start := c.reader.Position()
	raw, err := c.reader.Read(length)
	if err != nil {
		return ensureError(errors.PhaseDecode, errors.KindStreamError, err)
	}

	converted, err := conv.FromBits(c, raw)
	if err != nil {
		if def == nil {
			return ensureError(errors.PhaseDecode, errors.KindConversionError, err)
		}
		converted = def
	}

	if err := c.fields.WriteField(target, converted); err != nil {
		return err
	}
	c.fieldMap.Set(target.String(), bitcodec.FieldMapping{
		Path:      target,
		Position:  start,
		Raw:       raw,
		Converted: converted,
	})
	debugf("decode: mapped %s (%d bits at %d) = %v", target, length, start, converted)
	return nil
}

// BeginTransaction snapshots the path, then opens sub-transactions over the
// variables, the field map, the block scratch, the deferred field writes and
// the reader cursor, composed into one handle.
func (c *DecodingContext) BeginTransaction() (*Transaction, error) {
	savedPath := c.path
	savedPos := c.reader.Position()
	parent := NewTransaction(func() error {
		c.path = savedPath
		return c.reader.Move(savedPos - c.reader.Position())
	}, nil, nil)

	for _, begin := range []func() (*Transaction, error){
		c.vars.BeginTransaction,
		c.fieldMap.BeginTransaction,
		c.scratch.BeginTransaction,
		c.fields.BeginTransaction,
	} {
		child, err := begin()
		if err != nil {
			parent.Close()
			return nil, err
		}
		parent.RegisterTransaction(child)
	}
	return parent, nil
}

func ensureErrorNil(phase errors.Phase, kind errors.Kind, err error) error {
	if err == nil {
		return nil
	}
	return ensureError(phase, kind, err)
}
