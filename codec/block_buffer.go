package codec

// BufferBlock processes its inner block through a buffered window of a
// late-bound bit length. Inner operations that would step outside
// [0, length] fail with a window violation; the window is not padded, so an
// underrun is permitted.
type BufferBlock struct {
	length Expr[int64]
	inner  Block
}

// NewBuffer creates a buffer block. Nil arguments panic.
func NewBuffer(length Expr[int64], inner Block) *BufferBlock {
	if length == nil || inner == nil {
		panic("codec: NewBuffer with nil argument")
	}
	return &BufferBlock{length: length, inner: inner}
}

func (b *BufferBlock) Process(ctx Context) error {
	n, err := b.length(ctx)
	if err != nil {
		return err
	}
	window, err := NewWindow(ctx, n)
	if err != nil {
		return err
	}
	return b.inner.Process(window)
}
