package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode      Phase = "decode"      // bit stream to field tree
	PhaseEncode      Phase = "encode"      // field tree to bit stream
	PhaseEval        Phase = "eval"        // late-bound expression evaluation
	PhaseTransaction Phase = "transaction" // transaction begin/commit/rollback
	PhaseStream      Phase = "stream"      // underlying bit stream I/O
)

// Kind categorizes the error
type Kind string

const (
	KindArgumentInvalid     Kind = "argument_invalid"       // nil, blank name, non-positive length, wrong path kind
	KindKeyNotFound         Kind = "key_not_found"          // variable/field/block-scratch lookup miss
	KindDuplicateKey        Kind = "duplicate_key"          // field already mapped
	KindPositionOutOfWindow Kind = "position_out_of_window" // buffered-window violation
	KindStreamError         Kind = "stream_error"           // reader/writer reported
	KindConversionError     Kind = "conversion_error"       // converter reported
	KindInvalidOperation    Kind = "invalid_operation"      // e.g. unwrapping a successful outcome as an error
)

// Error is the structured error type used throughout the library
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Detail   string
	Path     string
	Position int64
	HasPos   bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}

	if e.HasPos {
		b.WriteString(" (bit ")
		b.WriteString(fmt.Sprintf("%d", e.Position))
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether err is an *Error of the given kind, in any phase.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the logical field path
func (b *Builder) Path(path string) *Builder {
	b.err.Path = path
	return b
}

// Position sets the bit position
func (b *Builder) Position(pos int64) *Builder {
	b.err.Position = pos
	b.err.HasPos = true
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ArgumentInvalid creates an invalid argument error
func ArgumentInvalid(phase Phase, detail string, args ...any) *Error {
	return New(phase, KindArgumentInvalid).Detail(detail, args...).Build()
}

// KeyNotFound creates a lookup miss error
func KeyNotFound(phase Phase, what, key string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindKeyNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, key),
	}
}

// DuplicateKey creates a duplicate key error
func DuplicateKey(phase Phase, what, key string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicateKey,
		Path:   key,
		Detail: fmt.Sprintf("%s %q already present", what, key),
	}
}

// PositionOutOfWindow creates a buffered-window violation error
func PositionOutOfWindow(phase Phase, pos, length int64) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindPositionOutOfWindow,
		Position: pos,
		HasPos:   true,
		Detail:   fmt.Sprintf("position %d outside window [0, %d]", pos, length),
	}
}

// Stream wraps a reader/writer failure
func Stream(phase Phase, cause error, detail string, args ...any) *Error {
	return New(phase, KindStreamError).Cause(cause).Detail(detail, args...).Build()
}

// Conversion wraps a converter failure
func Conversion(phase Phase, path string, cause error) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindConversionError,
		Path:  path,
		Cause: cause,
	}
}

// InvalidOperation creates an invalid operation error
func InvalidOperation(phase Phase, detail string, args ...any) *Error {
	return New(phase, KindInvalidOperation).Detail(detail, args...).Build()
}
