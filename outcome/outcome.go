package outcome

import (
	"fmt"

	"github.com/wippyai/bitcodec/errors"
)

// Outcome carries either a value or an error. Construct with Ok, Err or Of;
// the zero value is a successful outcome holding T's zero value.
type Outcome[T any] struct {
	value T
	err   error
}

// Ok returns a successful outcome holding v.
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

// Err returns a failed outcome. Panics on a nil error; a nil error is a
// programmer error, not a data error.
func Err[T any](err error) Outcome[T] {
	if err == nil {
		panic("outcome: Err with nil error")
	}
	return Outcome[T]{err: err}
}

// Of bridges a conventional (value, error) pair into an outcome.
func Of[T any](v T, err error) Outcome[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(v)
}

// IsOk reports success.
func (o Outcome[T]) IsOk() bool {
	return o.err == nil
}

// IsErr reports failure.
func (o Outcome[T]) IsErr() bool {
	return o.err != nil
}

// Err returns the carried error, or nil on success.
func (o Outcome[T]) Err() error {
	return o.err
}

// Get returns the conventional (value, error) pair.
func (o Outcome[T]) Get() (T, error) {
	return o.value, o.err
}

// Unwrap returns the value, panicking with the carried error on failure.
func (o Outcome[T]) Unwrap() T {
	if o.err != nil {
		panic(o.err)
	}
	return o.value
}

// UnwrapErr returns the carried error, panicking when the outcome succeeded.
func (o Outcome[T]) UnwrapErr() error {
	if o.err == nil {
		panic(errors.InvalidOperation(errors.PhaseEval, "UnwrapErr on a successful outcome"))
	}
	return o.err
}

// OnError substitutes def for the value when the outcome failed; a
// successful outcome passes through unchanged.
func (o Outcome[T]) OnError(def T) Outcome[T] {
	if o.err != nil {
		return Ok(def)
	}
	return o
}

// ContinueWith chains f after o: a failed outcome propagates without calling
// f, otherwise f runs with a panic guard that captures any panic into an
// error outcome. Panics if f is nil.
func (o Outcome[T]) ContinueWith(f func(T) error) Outcome[T] {
	if f == nil {
		panic("outcome: ContinueWith with nil func")
	}
	if o.err != nil {
		return o
	}
	if err := capture(func() error { return f(o.value) }); err != nil {
		return Err[T](err)
	}
	return o
}

// Map transforms the value of a successful outcome; errors short-circuit.
// Panics if f is nil.
func Map[T, U any](o Outcome[T], f func(T) U) Outcome[U] {
	if f == nil {
		panic("outcome: Map with nil func")
	}
	if o.err != nil {
		return Err[U](o.err)
	}
	return Ok(f(o.value))
}

// Bind composes a fallible continuation; errors short-circuit. Panics if f
// is nil.
func Bind[T, U any](o Outcome[T], f func(T) Outcome[U]) Outcome[U] {
	if f == nil {
		panic("outcome: Bind with nil func")
	}
	if o.err != nil {
		return Err[U](o.err)
	}
	return f(o.value)
}

// Match forces resolution into a plain value. Panics if either callback is
// nil.
func Match[T, U any](o Outcome[T], success func(T) U, failure func(error) U) U {
	if success == nil || failure == nil {
		panic("outcome: Match with nil callback")
	}
	if o.err != nil {
		return failure(o.err)
	}
	return success(o.value)
}

// Flatten collapses a nested outcome.
func Flatten[T any](o Outcome[Outcome[T]]) Outcome[T] {
	if o.err != nil {
		return Err[T](o.err)
	}
	return o.value
}

func capture(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return f()
}
