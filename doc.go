// Package bitcodec provides a bidirectional, bit-granular binary codec
// engine driven by a tree of composable definition blocks.
//
// A single declarative block tree is interpreted in two directions: decoding
// reads a bit stream and populates a logical field tree, encoding reads a
// logical field tree and produces a bit stream. Field widths are measured in
// bits, widths and presence may depend on previously decoded values, and
// failed parse attempts roll back without a trace.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	bitcodec/            Root package with the bit Value and boundary contracts
//	├── codec/           The engine: coding contexts, transactions, block algebra
//	├── fieldpath/       Logical slash-separated path value type
//	├── outcome/         Success/error carrier with monadic combinators
//	├── bitstream/       In-memory MSB-first bit stream reader and writer
//	├── fieldtree/       Reference logical field tree implementation
//	├── convert/         Reference binary value converters
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Decode two packed 4-bit fields from a single byte:
//
//	u8 := codec.ConverterExpr(convert.Uint{})
//	root := codec.NewGroup(
//	    codec.NewField(codec.PathExpr("/a"), codec.LengthExpr(4), u8, nil),
//	    codec.NewField(codec.PathExpr("/b"), codec.LengthExpr(4), u8, nil),
//	)
//
//	tree := fieldtree.New()
//	out := codec.Decode(root, bitstream.NewReader([]byte{0x59}), tree)
//	if out.IsErr() {
//	    log.Fatal(out.Err())
//	}
//	// tree now holds /a=5, /b=9
//
// # Transactional State
//
// Every mutable layer of a coding context (path, bit position, variables,
// field map, block scratch, deferred writes) participates in nested
// transactions. Speculative blocks such as Fill open a transaction per
// attempt; a rollback restores the context bit-for-bit to its state at
// transaction begin.
//
// # Thread Safety
//
// Blocks are immutable after construction and safe to share across contexts
// and goroutines. A coding context is NOT thread-safe and must be driven by
// a single goroutine per run.
package bitcodec
