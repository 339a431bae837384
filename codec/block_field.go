package codec

import (
	"github.com/wippyai/bitcodec"
	"github.com/wippyai/bitcodec/fieldpath"
)

// FieldBlock binds one field: path, bit length, converter and optional
// default are late-bound expressions evaluated when the block is processed.
// This is the only leaf that mutates the field map.
type FieldBlock struct {
	path   Expr[fieldpath.Path]
	length Expr[int64]
	conv   Expr[bitcodec.Converter]
	def    Expr[any]
}

// NewField creates a field block. def may be nil when the field has no
// default; the other expressions are required and a nil one panics.
func NewField(path Expr[fieldpath.Path], length Expr[int64], conv Expr[bitcodec.Converter], def Expr[any]) *FieldBlock {
	if path == nil || length == nil || conv == nil {
		panic("codec: NewField with nil expression")
	}
	return &FieldBlock{path: path, length: length, conv: conv, def: def}
}

func (b *FieldBlock) Process(ctx Context) error {
	p, err := b.path(ctx)
	if err != nil {
		return err
	}
	n, err := b.length(ctx)
	if err != nil {
		return err
	}
	conv, err := b.conv(ctx)
	if err != nil {
		return err
	}
	var def any
	if b.def != nil {
		if def, err = b.def(ctx); err != nil {
			return err
		}
	}
	return ctx.MapField(p, n, conv, def)
}
