// Package codec implements the coding-context machinery and the block
// combinator algebra of the bitcodec engine.
//
// A codec description is a tree of blocks: Field binds one bit-granular
// field, Group sequences children, Conditional and Choice branch on
// late-bound values, Repeat counts iterations in a scoped variable, Fill
// parses as many repetitions as fit, Buffer bounds its inner block to a bit
// window, Offset and Container move the bit and path cursors, and
// Deferred/Process split a definition from its execution site.
//
// The same tree drives both directions. A DecodingContext binds a bit
// reader and a field writer, an EncodingContext binds a field reader and a
// bit writer; Decode and Encode run a root block inside a single top-level
// transaction so a failed run leaves no trace.
//
// Speculation is built on layered transactions: BeginTransaction snapshots
// the path, the bit cursor, the variables, the field map, the block scratch
// and the deferred writes in one handle, and a rollback restores every
// layer bit-for-bit.
package codec
