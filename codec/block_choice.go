package codec

import (
	"reflect"
)

// ChoiceCase pairs a list of late-bound test values with a body block.
type ChoiceCase struct {
	values []Expr[any]
	body   Block
}

// NewCase creates a choice case. A nil body or test expression panics.
func NewCase(body Block, values ...Expr[any]) ChoiceCase {
	if body == nil {
		panic("codec: NewCase with nil body")
	}
	for _, v := range values {
		if v == nil {
			panic("codec: NewCase with nil test expression")
		}
	}
	return ChoiceCase{values: values, body: body}
}

// ChoiceBlock evaluates its switch expression once and then walks the case
// list in order. Every case whose test values contain the switch value is
// processed; dispatch does not stop at the first match, and the first body
// failure aborts the walk.
type ChoiceBlock struct {
	switchOn Expr[any]
	cases    []ChoiceCase
}

// NewChoice creates a choice block. A nil switch expression panics.
func NewChoice(switchOn Expr[any], cases ...ChoiceCase) *ChoiceBlock {
	if switchOn == nil {
		panic("codec: NewChoice with nil switch expression")
	}
	return &ChoiceBlock{switchOn: switchOn, cases: cases}
}

func (b *ChoiceBlock) Process(ctx Context) error {
	sv, err := b.switchOn(ctx)
	if err != nil {
		return err
	}
	for _, cs := range b.cases {
		matched := false
		for _, ve := range cs.values {
			tv, err := ve(ctx)
			if err != nil {
				return err
			}
			if equalValues(sv, tv) {
				matched = true
				break
			}
		}
		if matched {
			if err := cs.body.Process(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// equalValues implements structural equality between the converted switch
// value and a test value. Integer values compare by magnitude and sign so
// that a uint64 from a converter matches an int literal in a description.
func equalValues(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	an, aok := normInt(a)
	bn, bok := normInt(b)
	return aok && bok && an == bn
}

type normed struct {
	neg bool
	mag uint64
}

func normInt(v any) (normed, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i < 0 {
			return normed{neg: true, mag: uint64(-i)}, true
		}
		return normed{mag: uint64(i)}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return normed{mag: rv.Uint()}, true
	}
	return normed{}, false
}
