package codec

// OffsetBlock shifts the bit cursor by a late-bound signed offset.
type OffsetBlock struct {
	offset Expr[int64]
}

// NewOffset creates an offset block. A nil expression panics.
func NewOffset(offset Expr[int64]) *OffsetBlock {
	if offset == nil {
		panic("codec: NewOffset with nil expression")
	}
	return &OffsetBlock{offset: offset}
}

func (b *OffsetBlock) Process(ctx Context) error {
	n, err := b.offset(ctx)
	if err != nil {
		return err
	}
	return ctx.Move(n)
}
