package codec

// GroupBlock processes an ordered list of children, stopping at the first
// failure. A group opens no transaction of its own; callers that need
// speculation wrap it in Fill or an explicit transaction.
type GroupBlock struct {
	children []Block
}

// NewGroup creates a group over the given children. A nil child panics.
func NewGroup(children ...Block) *GroupBlock {
	for _, c := range children {
		if c == nil {
			panic("codec: NewGroup with nil child")
		}
	}
	return &GroupBlock{children: children}
}

func (b *GroupBlock) Process(ctx Context) error {
	for _, c := range b.children {
		if err := c.Process(ctx); err != nil {
			return err
		}
	}
	return nil
}
