package codec

import (
	"github.com/wippyai/bitcodec"
	"github.com/wippyai/bitcodec/errors"
	"github.com/wippyai/bitcodec/fieldpath"
)

// windowContext decorates a context with a bounded bit window. The window
// starts at the wrapped context's position at construction; positions are
// reported relative to that start, and any move or field binding whose
// projected relative position leaves [0, length] fails without touching the
// wrapped cursor. Everything else passes through.
type windowContext struct {
	Context
	start  int64
	length int64
}

// NewWindow wraps inner in a buffered window of the given bit length.
func NewWindow(inner Context, length int64) (Context, error) {
	if inner == nil {
		panic("codec: NewWindow with nil context")
	}
	if length < 0 {
		return nil, errors.ArgumentInvalid(inner.Phase(), "window length must not be negative, got %d", length)
	}
	return &windowContext{Context: inner, start: inner.Position(), length: length}, nil
}

func (w *windowContext) Position() int64 {
	return w.Context.Position() - w.start
}

func (w *windowContext) Move(offset int64) error {
	if rel := w.Position() + offset; rel < 0 || rel > w.length {
		return errors.PositionOutOfWindow(w.Phase(), rel, w.length)
	}
	return w.Context.Move(offset)
}

func (w *windowContext) MapField(path fieldpath.Path, length int64, conv bitcodec.Converter, def any) error {
	if rel := w.Position() + length; rel < 0 || rel > w.length {
		return errors.PositionOutOfWindow(w.Phase(), rel, w.length)
	}
	return w.Context.MapField(path, length, conv, def)
}
