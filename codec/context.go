package codec

import (
	"sort"
	"strings"

	"github.com/wippyai/bitcodec"
	"github.com/wippyai/bitcodec/errors"
	"github.com/wippyai/bitcodec/fieldpath"
)

// Context is the mutable state carrier handed to every block. It owns the
// current logical path, the bit position of the bound stream, the variable
// map, the accumulated field map and the per-block scratch area, and it can
// open nested transactions that snapshot every layer at once.
//
// A context is bound to one stream direction for its lifetime and is not
// safe for concurrent use.
type Context interface {
	bitcodec.EvalContext

	// Phase reports the bound direction: decode or encode.
	Phase() errors.Phase

	// ChangePath moves the path cursor: a relative path joins the current
	// path, an absolute path replaces it.
	ChangePath(p fieldpath.Path) error

	// Move shifts the bit cursor by a signed offset.
	Move(offset int64) error

	// MapField binds a field of the given bit width at the current path
	// combined with path. Decoding reads and converts; encoding converts
	// and writes. A non-nil def substitutes for the converted value when
	// conversion (decode) or the field read (encode) fails.
	MapField(path fieldpath.Path, length int64, conv bitcodec.Converter, def any) error

	SetVariable(name string, value any) error
	DeleteVariable(name string) error

	StoreBlockData(id BlockID, data any) error
	RetrieveBlockData(id BlockID) (any, error)

	// BeginTransaction snapshots every state layer and returns a handle
	// whose rollback restores all of them bit-for-bit.
	BeginTransaction() (*Transaction, error)
}

// codingState carries the layers shared by both context directions.
type codingState struct {
	phase    errors.Phase
	path     fieldpath.Path
	vars     *TxMap[string, any]
	fieldMap *TxMap[string, bitcodec.FieldMapping]
	scratch  *TxMap[BlockID, any]
}

func newCodingState(phase errors.Phase) codingState {
	return codingState{
		phase:    phase,
		path:     fieldpath.Root(),
		vars:     NewTxMap[string, any](),
		fieldMap: NewTxMap[string, bitcodec.FieldMapping](),
		scratch:  NewTxMap[BlockID, any](),
	}
}

func (s *codingState) Phase() errors.Phase {
	return s.phase
}

func (s *codingState) Path() fieldpath.Path {
	return s.path
}

func (s *codingState) ChangePath(p fieldpath.Path) error {
	s.path = s.path.Combine(p)
	return nil
}

func (s *codingState) Variable(name string) (any, error) {
	if err := validVariableName(s.phase, name); err != nil {
		return nil, err
	}
	v, ok := s.vars.Get(name)
	if !ok {
		return nil, errors.KeyNotFound(errors.PhaseEval, "variable", name)
	}
	return v, nil
}

func (s *codingState) SetVariable(name string, value any) error {
	if err := validVariableName(s.phase, name); err != nil {
		return err
	}
	s.vars.Set(name, value)
	return nil
}

func (s *codingState) DeleteVariable(name string) error {
	if err := validVariableName(s.phase, name); err != nil {
		return err
	}
	s.vars.Delete(name)
	return nil
}

func (s *codingState) FieldMapping(path fieldpath.Path) (bitcodec.FieldMapping, error) {
	target, err := s.resolveField(path)
	if err != nil {
		return bitcodec.FieldMapping{}, err
	}
	m, ok := s.fieldMap.Get(target.String())
	if !ok {
		return bitcodec.FieldMapping{}, errors.KeyNotFound(errors.PhaseEval, "field mapping", target.String())
	}
	return m, nil
}

// Mappings returns the accumulated field mappings ordered by bit position.
func (s *codingState) Mappings() []bitcodec.FieldMapping {
	out := make([]bitcodec.FieldMapping, 0, s.fieldMap.Len())
	for _, m := range s.fieldMap.Snapshot() {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Path.String() < out[j].Path.String()
	})
	return out
}

func (s *codingState) StoreBlockData(id BlockID, data any) error {
	s.scratch.Set(id, data)
	return nil
}

func (s *codingState) RetrieveBlockData(id BlockID) (any, error) {
	v, ok := s.scratch.Get(id)
	if !ok {
		return nil, errors.New(errors.PhaseEval, errors.KindKeyNotFound).
			Detail("no stored data for block %d", id).
			Build()
	}
	return v, nil
}

// resolveField turns a rooted field path into its mapping key under the
// current path. Field paths must be absolute and not the root; they are
// interpreted beneath the current path so that a Container re-roots its
// children.
func (s *codingState) resolveField(path fieldpath.Path) (fieldpath.Path, error) {
	if !path.IsAbsolute() {
		return fieldpath.Path{}, errors.ArgumentInvalid(s.phase, "field path %q must be absolute", path)
	}
	if path.IsRoot() {
		return fieldpath.Path{}, errors.ArgumentInvalid(s.phase, "field path must not be the root")
	}
	rel, err := path.RelativeTo(fieldpath.Root())
	if err != nil {
		return fieldpath.Path{}, err
	}
	return s.path.Combine(rel), nil
}

// checkMapFieldArgs validates the arguments shared by both MapField
// directions and resolves the mapping target.
func (s *codingState) checkMapFieldArgs(path fieldpath.Path, length int64, conv bitcodec.Converter) (fieldpath.Path, error) {
	target, err := s.resolveField(path)
	if err != nil {
		return fieldpath.Path{}, err
	}
	if length <= 0 {
		return fieldpath.Path{}, errors.ArgumentInvalid(s.phase, "field %q length must be positive, got %d", target, length)
	}
	if conv == nil {
		return fieldpath.Path{}, errors.ArgumentInvalid(s.phase, "field %q has no converter", target)
	}
	if _, ok := s.fieldMap.Get(target.String()); ok {
		return fieldpath.Path{}, errors.DuplicateKey(s.phase, "field", target.String())
	}
	return target, nil
}

func validVariableName(phase errors.Phase, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.ArgumentInvalid(phase, "variable name must not be blank")
	}
	return nil
}

// ensureError normalizes a collaborator failure into the structured error
// type, keeping already-structured errors untouched.
func ensureError(phase errors.Phase, kind errors.Kind, err error) error {
	if _, ok := err.(*errors.Error); ok {
		return err
	}
	return errors.New(phase, kind).Cause(err).Build()
}
