package codec

import (
	"github.com/wippyai/bitcodec/fieldpath"
)

// ContainerBlock re-roots its inner block: the current path moves to the
// late-bound container path for the duration of the inner processing and is
// restored on every exit path, so children address fields relative to the
// container.
type ContainerBlock struct {
	path  Expr[fieldpath.Path]
	inner Block
}

// NewContainer creates a container block. Nil arguments panic.
func NewContainer(path Expr[fieldpath.Path], inner Block) *ContainerBlock {
	if path == nil || inner == nil {
		panic("codec: NewContainer with nil argument")
	}
	return &ContainerBlock{path: path, inner: inner}
}

func (b *ContainerBlock) Process(ctx Context) error {
	p, err := b.path(ctx)
	if err != nil {
		return err
	}
	saved := ctx.Path()
	if err := ctx.ChangePath(p); err != nil {
		return err
	}
	defer func() {
		_ = ctx.ChangePath(saved)
	}()
	return b.inner.Process(ctx)
}
