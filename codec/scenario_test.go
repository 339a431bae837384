package codec

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/wippyai/bitcodec/bitstream"
	"github.com/wippyai/bitcodec/convert"
	"github.com/wippyai/bitcodec/errors"
	"github.com/wippyai/bitcodec/fieldpath"
	"github.com/wippyai/bitcodec/fieldtree"
)

var u4 = ConverterExpr(convert.Uint{})

// Decoding a tagged record: the choice dispatches on the decoded tag.
func TestScenarioTaggedRecord(t *testing.T) {
	data := []byte{0x02, 0x0A}
	lenField := NewField(PathExpr("/len"), LengthExpr(8), u8, nil)
	root := NewGroup(
		NewField(PathExpr("/type"), LengthExpr(8), u8, nil),
		NewChoice(FieldExpr("/type"),
			NewCase(NewField(PathExpr("/short"), LengthExpr(8), u8, nil), Const[any](uint64(1))),
			NewCase(lenField, Const[any](uint64(2))),
		),
	)

	ctx := decodeCtx(data)
	if err := root.Process(ctx); err != nil {
		t.Fatal(err)
	}
	if m, _ := ctx.FieldMapping(fieldpath.New("/type")); m.Converted != uint64(2) {
		t.Errorf("/type = %v", m.Converted)
	}
	if m, _ := ctx.FieldMapping(fieldpath.New("/len")); m.Converted != uint64(10) {
		t.Errorf("/len = %v", m.Converted)
	}
	if _, err := ctx.FieldMapping(fieldpath.New("/short")); err == nil {
		t.Error("non-matching case must not run")
	}
	if ctx.Position() != 16 {
		t.Errorf("position = %d, want 16", ctx.Position())
	}
}

// Fill inside a Buffer: the window bound stops the fill.
func TestScenarioFillStopsAtWindow(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04} // 32-bit stream, 24-bit window
	inner := NewGroup(NewField(itemPath("n", "/items"), LengthExpr(8), u8, nil), bump("n"))
	root := NewBuffer(LengthExpr(24), NewFill(inner))

	ctx := decodeCtx(data)
	if err := root.Process(ctx); err != nil {
		t.Fatal(err)
	}
	for i, want := range []uint64{1, 2, 3} {
		m, err := ctx.FieldMapping(fieldpath.New(fmt.Sprintf("/items/%d", i)))
		if err != nil || m.Converted != want {
			t.Errorf("items/%d = %+v, %v", i, m, err)
		}
	}
	if _, err := ctx.FieldMapping(fieldpath.New("/items/3")); err == nil {
		t.Error("fourth item lies outside the window")
	}
	if ctx.Position() != 24 {
		t.Errorf("position = %d, want 24", ctx.Position())
	}
}

// Fill inside a Buffer over a short stream: an underrun is permitted.
func TestScenarioFillUnderrun(t *testing.T) {
	data := []byte{0x01, 0x02} // 16-bit stream under a 24-bit window
	inner := NewGroup(NewField(itemPath("n", "/items"), LengthExpr(8), u8, nil), bump("n"))
	root := NewBuffer(LengthExpr(24), NewFill(inner))

	ctx := decodeCtx(data)
	if err := root.Process(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.FieldMapping(fieldpath.New("/items/1")); err != nil {
		t.Errorf("second item missing: %v", err)
	}
	if _, err := ctx.FieldMapping(fieldpath.New("/items/2")); err == nil {
		t.Error("third item cannot exist on a 16-bit stream")
	}
	if ctx.Position() != 16 {
		t.Errorf("position = %d, want 16", ctx.Position())
	}
}

// Deferred definition executed later: position-neutral to the caller.
func TestScenarioDeferredProcess(t *testing.T) {
	data := []byte{0x11, 0x22, 0x33}
	d := NewDeferred(NewField(PathExpr("/x"), LengthExpr(8), u8, nil))
	root := NewGroup(d, NewOffset(LengthExpr(16)), NewProcess(d))

	ctx := decodeCtx(data)
	if err := root.Process(ctx); err != nil {
		t.Fatal(err)
	}
	m, err := ctx.FieldMapping(fieldpath.New("/x"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Converted != uint64(0x11) || m.Position != 0 {
		t.Errorf("/x = %+v, want bits 0..8", m)
	}
	if ctx.Position() != 16 {
		t.Errorf("position = %d, want 16 (post-offset state)", ctx.Position())
	}
}

// Repeat with an index variable threading the item paths.
func TestScenarioRepeatWithIndex(t *testing.T) {
	data := []byte{0xAB, 0xC0} // 0xA, 0xB, 0xC as 4-bit items
	inner := NewField(itemPath("i", "/a"), LengthExpr(4), u4, nil)
	root := NewRepeat(repeatCond("i", 3), Const("i"), inner)

	ctx := decodeCtx(data)
	if err := root.Process(ctx); err != nil {
		t.Fatal(err)
	}
	for i, want := range []uint64{0xA, 0xB, 0xC} {
		m, err := ctx.FieldMapping(fieldpath.New(fmt.Sprintf("/a/%d", i)))
		if err != nil || m.Converted != want {
			t.Errorf("a/%d = %+v, %v", i, m, err)
		}
	}
	if _, err := ctx.Variable("i"); !errors.IsKind(err, errors.KindKeyNotFound) {
		t.Errorf("i should hold its prior (unset) value, got %v", err)
	}
}

// Encoding then decoding the same description round-trips the tree.
func TestScenarioEncodeRoundTrip(t *testing.T) {
	root := NewGroup(
		NewField(PathExpr("/a"), LengthExpr(4), u4, nil),
		NewField(PathExpr("/b"), LengthExpr(4), u4, nil),
	)

	src := fieldtree.New()
	_ = src.WriteField(fieldpath.New("/a"), uint64(5))
	_ = src.WriteField(fieldpath.New("/b"), uint64(9))

	w := bitstream.NewWriter()
	if out := Encode(root, w, src); out.IsErr() {
		t.Fatalf("encode: %v", out.Err())
	}
	if !bytes.Equal(w.Bytes(), []byte{0x59}) {
		t.Fatalf("encoded = %x, want 59", w.Bytes())
	}

	dst := fieldtree.New()
	if out := Decode(root, bitstream.NewReader(w.Bytes()), dst); out.IsErr() {
		t.Fatalf("decode: %v", out.Err())
	}
	for path, want := range map[string]uint64{"/a": 5, "/b": 9} {
		v, err := dst.ReadField(fieldpath.New(path))
		if err != nil || v != want {
			t.Errorf("%s = %v, %v", path, v, err)
		}
	}
}

// A buffer overflow inside a transaction rolls the partial group back.
func TestScenarioBufferOverflowRollsBack(t *testing.T) {
	data := []byte{0xAA, 0x80}
	root := NewBuffer(LengthExpr(8), NewGroup(
		NewField(PathExpr("/x"), LengthExpr(8), u8, nil),
		NewField(PathExpr("/y"), LengthExpr(1), u8, nil),
	))

	ctx := decodeCtx(data)
	tx, err := ctx.BeginTransaction()
	if err != nil {
		t.Fatal(err)
	}
	perr := root.Process(ctx)
	if !errors.IsKind(perr, errors.KindPositionOutOfWindow) {
		t.Fatalf("expected window violation, got %v", perr)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.FieldMapping(fieldpath.New("/x")); !errors.IsKind(err, errors.KindKeyNotFound) {
		t.Errorf("/x should be rolled back, got %v", err)
	}
	if ctx.Position() != 0 {
		t.Errorf("position = %d, want 0", ctx.Position())
	}
}
