package codec

import (
	stderrors "errors"

	"github.com/wippyai/bitcodec"
	"github.com/wippyai/bitcodec/outcome"
)

// Decode runs root against a fresh decoding context over reader and fields.
// The whole run executes in one transaction: on success the field tree is
// fully populated and the outcome is a success; on failure nothing reaches
// fields and the outcome carries the first error.
func Decode(root Block, reader bitcodec.BitReader, fields bitcodec.FieldWriter) outcome.Void {
	if root == nil {
		panic("codec: Decode with nil root block")
	}
	return run(root, NewDecodingContext(reader, fields))
}

// Encode runs root against a fresh encoding context over writer and fields.
// The whole run executes in one transaction: on success the bit stream is
// fully written; on failure nothing reaches writer and the outcome carries
// the first error.
func Encode(root Block, writer bitcodec.BitWriter, fields bitcodec.FieldReader) outcome.Void {
	if root == nil {
		panic("codec: Encode with nil root block")
	}
	return run(root, NewEncodingContext(writer, fields))
}

func run(root Block, ctx Context) outcome.Void {
	tx, err := ctx.BeginTransaction()
	if err != nil {
		return outcome.Fail(err)
	}
	if err := root.Process(ctx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			err = stderrors.Join(err, rbErr)
		}
		return outcome.Fail(err)
	}
	return outcome.VoidOf(tx.Commit())
}
