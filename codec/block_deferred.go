package codec

import (
	"github.com/wippyai/bitcodec/errors"
	"github.com/wippyai/bitcodec/fieldpath"
)

// deferredSite is the (path, position) pair a DeferredBlock captures in the
// context's scratch area.
type deferredSite struct {
	path     fieldpath.Path
	position int64
}

// DeferredBlock skips its inner definition at its textual position: Process
// records the current (path, position) under this block's identity and
// succeeds without touching the inner block. A later ProcessBlock resolves
// the deferred definition at the captured site.
type DeferredBlock struct {
	id    BlockID
	inner Block
}

// NewDeferred creates a deferred block with a fresh identity. A nil inner
// block panics.
func NewDeferred(inner Block) *DeferredBlock {
	if inner == nil {
		panic("codec: NewDeferred with nil inner block")
	}
	return &DeferredBlock{id: nextBlockID(), inner: inner}
}

// ID returns the block's scratch-area identity.
func (b *DeferredBlock) ID() BlockID {
	return b.id
}

func (b *DeferredBlock) Process(ctx Context) error {
	return ctx.StoreBlockData(b.id, deferredSite{path: ctx.Path(), position: ctx.Position()})
}

// ProcessBlock executes the inner definition of a previously processed
// DeferredBlock at that block's captured (path, position), then restores the
// caller's path and position on every exit path. Deferred execution is
// position-neutral to its caller.
type ProcessBlock struct {
	target *DeferredBlock
}

// NewProcess creates a process block for target. A nil target panics.
func NewProcess(target *DeferredBlock) *ProcessBlock {
	if target == nil {
		panic("codec: NewProcess with nil target")
	}
	return &ProcessBlock{target: target}
}

func (b *ProcessBlock) Process(ctx Context) (err error) {
	data, err := ctx.RetrieveBlockData(b.target.id)
	if err != nil {
		return err
	}
	site, ok := data.(deferredSite)
	if !ok {
		return errors.InvalidOperation(ctx.Phase(), "block %d scratch does not hold a deferred site", b.target.id)
	}

	savedPath := ctx.Path()
	savedPos := ctx.Position()
	defer func() {
		if cpErr := ctx.ChangePath(savedPath); cpErr != nil && err == nil {
			err = cpErr
		}
		if mvErr := ctx.Move(savedPos - ctx.Position()); mvErr != nil && err == nil {
			err = mvErr
		}
	}()

	if err := ctx.ChangePath(site.path); err != nil {
		return err
	}
	if err := ctx.Move(site.position - ctx.Position()); err != nil {
		return err
	}
	return b.target.inner.Process(ctx)
}
