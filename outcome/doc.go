// Package outcome provides a success/error carrier with monadic
// combinators.
//
// The engine encodes recoverable parse failures as data so that blocks like
// Fill can inspect a failed attempt and roll it back, while callers retain
// the option to panic through Unwrap at the top level. Combinators that
// change the carried type (Map, Bind, Match) are package functions because
// Go methods cannot introduce type parameters.
package outcome
