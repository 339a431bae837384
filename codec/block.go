package codec

import (
	"sync/atomic"
)

// Block is a node in a codec description tree. Blocks are immutable after
// construction and reusable across contexts; Process interprets the block
// against the bound direction and reports the first failure.
type Block interface {
	Process(ctx Context) error
}

// BlockFunc adapts a plain function to the Block interface.
type BlockFunc func(ctx Context) error

// Process calls f.
func (f BlockFunc) Process(ctx Context) error {
	return f(ctx)
}

// BlockID identifies a block instance as a key into the context's scratch
// area. Identity is assigned at construction time; structurally identical
// blocks keep distinct identities.
type BlockID int64

var blockIDs atomic.Int64

func nextBlockID() BlockID {
	return BlockID(blockIDs.Add(1))
}
