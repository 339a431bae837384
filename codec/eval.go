package codec

import (
	"github.com/wippyai/bitcodec"
	"github.com/wippyai/bitcodec/fieldpath"
)

// Expr is a late-bound expression: a value read at processing time from the
// evaluation context (path, position, variables, field map).
type Expr[T any] func(ctx bitcodec.EvalContext) (T, error)

// Const returns an expression that always yields v.
func Const[T any](v T) Expr[T] {
	return func(bitcodec.EvalContext) (T, error) {
		return v, nil
	}
}

// PathExpr returns a constant path expression.
func PathExpr(s string) Expr[fieldpath.Path] {
	return Const(fieldpath.New(s))
}

// LengthExpr returns a constant bit-length expression.
func LengthExpr(bits int64) Expr[int64] {
	return Const(bits)
}

// ConverterExpr returns a constant converter expression.
func ConverterExpr(c bitcodec.Converter) Expr[bitcodec.Converter] {
	return Const(c)
}

// VariableExpr reads a variable from the context at processing time.
func VariableExpr(name string) Expr[any] {
	return func(ctx bitcodec.EvalContext) (any, error) {
		return ctx.Variable(name)
	}
}

// FieldExpr reads the converted value of a previously bound field at
// processing time. The path is resolved under the context's current path.
func FieldExpr(path string) Expr[any] {
	p := fieldpath.New(path)
	return func(ctx bitcodec.EvalContext) (any, error) {
		m, err := ctx.FieldMapping(p)
		if err != nil {
			return nil, err
		}
		return m.Converted, nil
	}
}
