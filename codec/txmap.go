package codec

import (
	"maps"
)

// TxMap is a key-value store whose contents participate in transactions: a
// begin snapshots the whole mapping and a rollback atomically replaces the
// live mapping with the snapshot. Snapshots are shallow; values are treated
// as immutable by convention. Nested transactions stack snapshots.
type TxMap[K comparable, V any] struct {
	m map[K]V
}

// NewTxMap returns an empty transactional map.
func NewTxMap[K comparable, V any]() *TxMap[K, V] {
	return &TxMap[K, V]{m: make(map[K]V)}
}

// Get returns the value for k.
func (t *TxMap[K, V]) Get(k K) (V, bool) {
	v, ok := t.m[k]
	return v, ok
}

// Set stores v under k, overwriting any previous value.
func (t *TxMap[K, V]) Set(k K, v V) {
	t.m[k] = v
}

// Add stores v under k only if k is absent, reporting whether it was added.
func (t *TxMap[K, V]) Add(k K, v V) bool {
	if _, ok := t.m[k]; ok {
		return false
	}
	t.m[k] = v
	return true
}

// Delete removes k.
func (t *TxMap[K, V]) Delete(k K) {
	delete(t.m, k)
}

// Len returns the number of entries.
func (t *TxMap[K, V]) Len() int {
	return len(t.m)
}

// Snapshot returns a shallow copy of the current mapping.
func (t *TxMap[K, V]) Snapshot() map[K]V {
	return maps.Clone(t.m)
}

// BeginTransaction snapshots the mapping and returns a handle whose
// rollback restores it.
func (t *TxMap[K, V]) BeginTransaction() (*Transaction, error) {
	snap := maps.Clone(t.m)
	return NewTransaction(func() error {
		t.m = snap
		return nil
	}, nil, nil), nil
}
