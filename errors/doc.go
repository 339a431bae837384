// Package errors provides structured error types for the bitcodec library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: logical field path, bit
// position, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindDuplicateKey).
//		Path("/header/len").
//		Position(16).
//		Detail("field already mapped").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.KeyNotFound(errors.PhaseEval, "variable", "i")
//	err := errors.PositionOutOfWindow(errors.PhaseDecode, 9, 8)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
