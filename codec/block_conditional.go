package codec

// ConditionalBlock processes its inner block when a late-bound condition
// holds; otherwise it succeeds without side effects. With an else block,
// the false branch runs that instead.
type ConditionalBlock struct {
	cond Expr[bool]
	then Block
	els  Block
}

// NewConditional creates a conditional without an else branch. Nil
// arguments panic.
func NewConditional(cond Expr[bool], then Block) *ConditionalBlock {
	if cond == nil || then == nil {
		panic("codec: NewConditional with nil argument")
	}
	return &ConditionalBlock{cond: cond, then: then}
}

// NewConditionalElse creates a conditional with an else branch. Nil
// arguments panic.
func NewConditionalElse(cond Expr[bool], then, els Block) *ConditionalBlock {
	if cond == nil || then == nil || els == nil {
		panic("codec: NewConditionalElse with nil argument")
	}
	return &ConditionalBlock{cond: cond, then: then, els: els}
}

func (b *ConditionalBlock) Process(ctx Context) error {
	ok, err := b.cond(ctx)
	if err != nil {
		return err
	}
	if ok {
		return b.then.Process(ctx)
	}
	if b.els != nil {
		return b.els.Process(ctx)
	}
	return nil
}
