package fieldtree

import (
	"github.com/wippyai/bitcodec/errors"
	"github.com/wippyai/bitcodec/fieldpath"
)

// Tree is an ordered path-to-value store implementing the bitcodec
// FieldReader and FieldWriter contracts. Paths must be absolute and not the
// root. Not safe for concurrent use.
type Tree struct {
	values map[string]any
	order  []string
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{values: make(map[string]any)}
}

// Len returns the number of stored fields.
func (t *Tree) Len() int {
	return len(t.values)
}

// ReadField returns the value stored at path.
func (t *Tree) ReadField(path fieldpath.Path) (any, error) {
	if err := validate(path); err != nil {
		return nil, err
	}
	v, ok := t.values[path.String()]
	if !ok {
		return nil, errors.KeyNotFound(errors.PhaseEncode, "field", path.String())
	}
	return v, nil
}

// WriteField stores value at path, overwriting any previous value.
func (t *Tree) WriteField(path fieldpath.Path, value any) error {
	if err := validate(path); err != nil {
		return err
	}
	key := path.String()
	if _, ok := t.values[key]; !ok {
		t.order = append(t.order, key)
	}
	t.values[key] = value
	return nil
}

// Paths returns the stored paths in first-insertion order.
func (t *Tree) Paths() []fieldpath.Path {
	out := make([]fieldpath.Path, len(t.order))
	for i, s := range t.order {
		out[i] = fieldpath.New(s)
	}
	return out
}

func validate(path fieldpath.Path) error {
	if !path.IsAbsolute() {
		return errors.ArgumentInvalid(errors.PhaseEval, "field path %q must be absolute", path)
	}
	if path.IsRoot() {
		return errors.ArgumentInvalid(errors.PhaseEval, "field path must not be the root")
	}
	return nil
}
