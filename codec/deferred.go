package codec

import (
	"github.com/wippyai/bitcodec"
	"github.com/wippyai/bitcodec/errors"
	"github.com/wippyai/bitcodec/fieldpath"
)

// writeOp is one queued stream operation: a cursor move or a value append.
type writeOp struct {
	value  bitcodec.Value
	move   int64
	isMove bool
}

// DeferredBitWriter wraps a bit-stream writer and queues every operation
// instead of touching the underlying stream. Position accounting stays
// correct mid-parse; the queue drains into the wrapped writer in insertion
// order when the outermost transaction commits, and rolled-back operations
// are discarded.
type DeferredBitWriter struct {
	inner bitcodec.BitWriter
	queue []writeOp
	pos   int64
	depth int
}

// NewDeferredBitWriter wraps w, starting at w's current position. Panics on
// a nil writer.
func NewDeferredBitWriter(w bitcodec.BitWriter) *DeferredBitWriter {
	if w == nil {
		panic("codec: NewDeferredBitWriter with nil writer")
	}
	return &DeferredBitWriter{inner: w, pos: w.Position()}
}

// Position returns the virtual cursor: the wrapped writer's origin plus all
// queued operations.
func (d *DeferredBitWriter) Position() int64 {
	return d.pos
}

// Move queues a cursor shift. Fails when the target would be negative.
func (d *DeferredBitWriter) Move(offset int64) error {
	if d.pos+offset < 0 {
		return errors.New(errors.PhaseStream, errors.KindStreamError).
			Position(d.pos).
			Detail("move by %d bits to negative position", offset).
			Build()
	}
	d.queue = append(d.queue, writeOp{move: offset, isMove: true})
	d.pos += offset
	return nil
}

// Write queues v and advances the virtual cursor by its length.
func (d *DeferredBitWriter) Write(v bitcodec.Value) error {
	d.queue = append(d.queue, writeOp{value: v})
	d.pos += v.Len()
	return nil
}

// BeginTransaction opens a nested scope over the queue. Rolling back
// truncates the queue to its state at begin; committing the outermost scope
// flushes the queue into the wrapped writer.
func (d *DeferredBitWriter) BeginTransaction() (*Transaction, error) {
	d.depth++
	mark := len(d.queue)
	savedPos := d.pos
	return NewTransaction(func() error {
		d.queue = d.queue[:mark]
		d.pos = savedPos
		d.depth--
		return nil
	}, func() error {
		d.depth--
		if d.depth == 0 {
			return d.Flush()
		}
		return nil
	}, nil), nil
}

// Flush applies every queued operation to the wrapped writer, in insertion
// order, and clears the queue.
func (d *DeferredBitWriter) Flush() error {
	for _, op := range d.queue {
		if op.isMove {
			if err := d.inner.Move(op.move); err != nil {
				return err
			}
			continue
		}
		if err := d.inner.Write(op.value); err != nil {
			return err
		}
	}
	d.queue = d.queue[:0]
	return nil
}

type fieldWrite struct {
	path  fieldpath.Path
	value any
}

// DeferredFieldWriter is the logical-tree analogue of DeferredBitWriter:
// (path, value) pairs queue up and apply to the wrapped field writer in
// insertion order when the outermost transaction commits.
type DeferredFieldWriter struct {
	inner bitcodec.FieldWriter
	queue []fieldWrite
	depth int
}

// NewDeferredFieldWriter wraps w. Panics on a nil writer.
func NewDeferredFieldWriter(w bitcodec.FieldWriter) *DeferredFieldWriter {
	if w == nil {
		panic("codec: NewDeferredFieldWriter with nil writer")
	}
	return &DeferredFieldWriter{inner: w}
}

// WriteField queues a field write.
func (d *DeferredFieldWriter) WriteField(path fieldpath.Path, value any) error {
	d.queue = append(d.queue, fieldWrite{path: path, value: value})
	return nil
}

// BeginTransaction opens a nested scope over the queue, mirroring
// DeferredBitWriter.
func (d *DeferredFieldWriter) BeginTransaction() (*Transaction, error) {
	d.depth++
	mark := len(d.queue)
	return NewTransaction(func() error {
		d.queue = d.queue[:mark]
		d.depth--
		return nil
	}, func() error {
		d.depth--
		if d.depth == 0 {
			return d.Flush()
		}
		return nil
	}, nil), nil
}

// Flush applies every queued field write to the wrapped writer, in
// insertion order, and clears the queue.
func (d *DeferredFieldWriter) Flush() error {
	for _, fw := range d.queue {
		if err := d.inner.WriteField(fw.path, fw.value); err != nil {
			return err
		}
	}
	d.queue = d.queue[:0]
	return nil
}
