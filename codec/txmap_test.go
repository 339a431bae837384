package codec

import (
	"testing"
)

func TestTxMapAddSet(t *testing.T) {
	m := NewTxMap[string, int]()
	if !m.Add("a", 1) {
		t.Error("first add should succeed")
	}
	if m.Add("a", 2) {
		t.Error("duplicate add should fail")
	}
	if v, _ := m.Get("a"); v != 1 {
		t.Errorf("failed add mutated value to %d", v)
	}

	m.Set("a", 3)
	if v, _ := m.Get("a"); v != 3 {
		t.Errorf("set did not overwrite, got %d", v)
	}
	if m.Len() != 1 {
		t.Errorf("len = %d", m.Len())
	}

	m.Delete("a")
	if _, ok := m.Get("a"); ok {
		t.Error("delete did not remove entry")
	}
}

func TestTxMapRollback(t *testing.T) {
	m := NewTxMap[string, int]()
	m.Set("a", 1)

	tx, err := m.BeginTransaction()
	if err != nil {
		t.Fatal(err)
	}
	m.Set("a", 2)
	m.Set("b", 3)
	m.Delete("a")

	if err := tx.Rollback(); err != nil {
		t.Fatal(err)
	}
	if v, ok := m.Get("a"); !ok || v != 1 {
		t.Errorf("a = %d (ok=%v), want 1", v, ok)
	}
	if _, ok := m.Get("b"); ok {
		t.Error("b should be gone after rollback")
	}
}

func TestTxMapCommitKeeps(t *testing.T) {
	m := NewTxMap[string, int]()
	tx, _ := m.BeginTransaction()
	m.Set("a", 1)
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}
	if v, ok := m.Get("a"); !ok || v != 1 {
		t.Errorf("a = %d (ok=%v) after commit", v, ok)
	}
}

func TestTxMapNested(t *testing.T) {
	m := NewTxMap[string, int]()
	m.Set("a", 1)

	outer, _ := m.BeginTransaction()
	m.Set("a", 2)

	inner, _ := m.BeginTransaction()
	m.Set("a", 3)
	if err := inner.Rollback(); err != nil {
		t.Fatal(err)
	}
	if v, _ := m.Get("a"); v != 2 {
		t.Errorf("inner rollback: a = %d, want 2", v)
	}

	if err := outer.Rollback(); err != nil {
		t.Fatal(err)
	}
	if v, _ := m.Get("a"); v != 1 {
		t.Errorf("outer rollback: a = %d, want 1", v)
	}
}
