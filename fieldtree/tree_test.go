package fieldtree

import (
	"testing"

	"github.com/wippyai/bitcodec/errors"
	"github.com/wippyai/bitcodec/fieldpath"
)

func TestWriteRead(t *testing.T) {
	tree := New()
	p := fieldpath.New("/a/b")
	if err := tree.WriteField(p, uint64(7)); err != nil {
		t.Fatalf("write: %v", err)
	}
	v, err := tree.ReadField(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v != uint64(7) {
		t.Errorf("value = %v", v)
	}
	if tree.Len() != 1 {
		t.Errorf("len = %d", tree.Len())
	}
}

func TestOverwriteKeepsOrder(t *testing.T) {
	tree := New()
	a, b := fieldpath.New("/a"), fieldpath.New("/b")
	_ = tree.WriteField(a, 1)
	_ = tree.WriteField(b, 2)
	_ = tree.WriteField(a, 3)

	paths := tree.Paths()
	if len(paths) != 2 || !paths[0].Equal(a) || !paths[1].Equal(b) {
		t.Errorf("paths = %v", paths)
	}
	v, _ := tree.ReadField(a)
	if v != 3 {
		t.Errorf("overwritten value = %v", v)
	}
}

func TestMissing(t *testing.T) {
	tree := New()
	_, err := tree.ReadField(fieldpath.New("/nope"))
	if !errors.IsKind(err, errors.KindKeyNotFound) {
		t.Errorf("expected key not found, got %v", err)
	}
}

func TestValidation(t *testing.T) {
	tree := New()
	if err := tree.WriteField(fieldpath.New("a"), 1); !errors.IsKind(err, errors.KindArgumentInvalid) {
		t.Errorf("relative path should be rejected, got %v", err)
	}
	if err := tree.WriteField(fieldpath.Root(), 1); !errors.IsKind(err, errors.KindArgumentInvalid) {
		t.Errorf("root path should be rejected, got %v", err)
	}
	if _, err := tree.ReadField(fieldpath.New("x/y")); !errors.IsKind(err, errors.KindArgumentInvalid) {
		t.Errorf("relative read should be rejected, got %v", err)
	}
}
