package codec

import (
	"github.com/wippyai/bitcodec/errors"
)

// RepeatBlock processes its inner block while a late-bound condition holds,
// counting iterations in a named variable. The counter starts at zero and
// increments between iterations; whatever value the variable held before the
// repeat (including being unset) is restored on every exit path.
type RepeatBlock struct {
	cond      Expr[bool]
	indexName Expr[string]
	inner     Block
}

// NewRepeat creates a repeat block. Nil arguments panic.
func NewRepeat(cond Expr[bool], indexName Expr[string], inner Block) *RepeatBlock {
	if cond == nil || indexName == nil || inner == nil {
		panic("codec: NewRepeat with nil argument")
	}
	return &RepeatBlock{cond: cond, indexName: indexName, inner: inner}
}

func (b *RepeatBlock) Process(ctx Context) error {
	name, err := b.indexName(ctx)
	if err != nil {
		return err
	}

	saved, err := ctx.Variable(name)
	had := err == nil
	if err != nil && !errors.IsKind(err, errors.KindKeyNotFound) {
		return err
	}
	if err := ctx.SetVariable(name, int64(0)); err != nil {
		return err
	}
	defer func() {
		if had {
			_ = ctx.SetVariable(name, saved)
		} else {
			_ = ctx.DeleteVariable(name)
		}
	}()

	for i := int64(0); ; i++ {
		more, err := b.cond(ctx)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if err := b.inner.Process(ctx); err != nil {
			return err
		}
		if err := ctx.SetVariable(name, i+1); err != nil {
			return err
		}
	}
}
