package codec

import (
	"github.com/wippyai/bitcodec"
	"github.com/wippyai/bitcodec/errors"
	"github.com/wippyai/bitcodec/fieldpath"
)

// EncodingContext binds a logical field reader and a bit-stream writer.
// MapField reads the typed field value, converts it to bits and appends it;
// stream writes are deferred and only reach the wrapped writer when the
// outermost transaction commits.
type EncodingContext struct {
	codingState
	writer *DeferredBitWriter
	fields bitcodec.FieldReader
}

// NewEncodingContext creates an encoding context over writer and fields.
// Panics when either is nil; that is a programmer error.
func NewEncodingContext(writer bitcodec.BitWriter, fields bitcodec.FieldReader) *EncodingContext {
	if fields == nil {
		panic("codec: NewEncodingContext with nil field reader")
	}
	return &EncodingContext{
		codingState: newCodingState(errors.PhaseEncode),
		writer:      NewDeferredBitWriter(writer),
		fields:      fields,
	}
}

// Position forwards the deferred writer's virtual cursor.
func (c *EncodingContext) Position() int64 {
	return c.writer.Position()
}

// Move forwards to the deferred writer.
func (c *EncodingContext) Move(offset int64) error {
	return c.writer.Move(offset)
}

// MapField reads the typed value at the current path combined with path,
// converts it into length bits and queues the write. A field-read failure
// substitutes def when one is supplied.
func (c *EncodingContext) MapField(path fieldpath.Path, length int64, conv bitcodec.Converter, def any) error {
	target, err := c.checkMapFieldArgs(path, length, conv)
	if err != nil {
		return err
	}

	value, err := c.fields.ReadField(target)
	if err != nil {
		if def == nil {
			return ensureError(errors.PhaseEncode, errors.KindKeyNotFound, err)
		}
		value = def
	}

	raw, err := conv.ToBits(c, value, length)
	if err != nil {
		return ensureError(errors.PhaseEncode, errors.KindConversionError, err)
	}
	if raw.Len() != length {
		return errors.New(errors.PhaseEncode, errors.KindConversionError).
			Path(target.String()).
			Detail("converter produced %d bits, field is %d", raw.Len(), length).
			Build()
	}

	start := c.writer.Position()
	if err := c.writer.Write(raw); err != nil {
		return err
	}
	c.fieldMap.Set(target.String(), bitcodec.FieldMapping{
		Path:      target,
		Position:  start,
		Raw:       raw,
		Converted: value,
	})
	debugf("encode: mapped %s (%d bits at %d) = %v", target, length, start, value)
	return nil
}

// BeginTransaction snapshots the path, then opens sub-transactions over the
// variables, the field map, the block scratch and the deferred stream
// writes, composed into one handle. The deferred writer's sub-transaction
// restores the virtual cursor on rollback.
func (c *EncodingContext) BeginTransaction() (*Transaction, error) {
	savedPath := c.path
	parent := NewTransaction(func() error {
		c.path = savedPath
		return nil
	}, nil, nil)

	for _, begin := range []func() (*Transaction, error){
		c.vars.BeginTransaction,
		c.fieldMap.BeginTransaction,
		c.scratch.BeginTransaction,
		c.writer.BeginTransaction,
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
