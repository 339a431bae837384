package codec

// FillBlock repeats its inner block until an attempt fails, each attempt in
// its own transaction: successes commit, the failing attempt rolls back and
// the fill exits with success. The context ends positioned exactly at the
// start of the first failing attempt, which leaves no trace.
//
// An inner block that always succeeds without consuming input never
// terminates the fill; bound it with a Buffer when the stream cannot do it.
type FillBlock struct {
	inner Block
}

// NewFill creates a fill block. A nil inner block panics.
func NewFill(inner Block) *FillBlock {
	if inner == nil {
		panic("codec: NewFill with nil inner block")
	}
	return &FillBlock{inner: inner}
}

func (b *FillBlock) Process(ctx Context) error {
	for {
		tx, err := ctx.BeginTransaction()
		if err != nil {
			return err
		}
		if err := b.inner.Process(ctx); err != nil {
			debugf("fill: attempt failed, rolling back: %v", err)
			if rbErr := tx.Rollback(); rbErr != nil {
				return rbErr
			}
			return nil
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
}
