package convert

import (
	"bytes"
	"testing"

	"github.com/wippyai/bitcodec"
	"github.com/wippyai/bitcodec/errors"
)

func TestUint(t *testing.T) {
	v, err := Uint{}.FromBits(nil, bitcodec.FromUint64(0x2A, 8))
	if err != nil {
		t.Fatalf("FromBits: %v", err)
	}
	if v != uint64(0x2A) {
		t.Errorf("FromBits = %v", v)
	}

	raw, err := Uint{}.ToBits(nil, uint64(0x2A), 8)
	if err != nil {
		t.Fatalf("ToBits: %v", err)
	}
	if !raw.Equal(bitcodec.FromUint64(0x2A, 8)) {
		t.Errorf("ToBits = %v", raw)
	}

	// plain ints are accepted
	if _, err := (Uint{}).ToBits(nil, 3, 4); err != nil {
		t.Errorf("ToBits(int): %v", err)
	}

	if _, err := (Uint{}).ToBits(nil, uint64(16), 4); !errors.IsKind(err, errors.KindConversionError) {
		t.Errorf("overflow should fail, got %v", err)
	}
	if _, err := (Uint{}).ToBits(nil, -1, 4); !errors.IsKind(err, errors.KindConversionError) {
		t.Errorf("negative should fail, got %v", err)
	}
	if _, err := (Uint{}).ToBits(nil, "x", 4); !errors.IsKind(err, errors.KindConversionError) {
		t.Errorf("wrong type should fail, got %v", err)
	}
}

func TestIntSignExtension(t *testing.T) {
	// 4-bit 0b1111 is -1
	v, err := Int{}.FromBits(nil, bitcodec.FromUint64(0xF, 4))
	if err != nil {
		t.Fatalf("FromBits: %v", err)
	}
	if v != int64(-1) {
		t.Errorf("FromBits = %v, want -1", v)
	}

	v, err = Int{}.FromBits(nil, bitcodec.FromUint64(0x7, 4))
	if err != nil {
		t.Fatalf("FromBits: %v", err)
	}
	if v != int64(7) {
		t.Errorf("FromBits = %v, want 7", v)
	}
}

func TestIntRoundTrip(t *testing.T) {
	for _, i := range []int64{-8, -1, 0, 7} {
		raw, err := Int{}.ToBits(nil, i, 4)
		if err != nil {
			t.Fatalf("ToBits(%d): %v", i, err)
		}
		back, err := Int{}.FromBits(nil, raw)
		if err != nil {
			t.Fatalf("FromBits: %v", err)
		}
		if back != i {
			t.Errorf("round trip %d = %v", i, back)
		}
	}

	if _, err := (Int{}).ToBits(nil, int64(8), 4); !errors.IsKind(err, errors.KindConversionError) {
		t.Errorf("out of range should fail, got %v", err)
	}
	if _, err := (Int{}).ToBits(nil, int64(-9), 4); !errors.IsKind(err, errors.KindConversionError) {
		t.Errorf("out of range should fail, got %v", err)
	}
}

func TestBool(t *testing.T) {
	v, err := Bool{}.FromBits(nil, bitcodec.FromUint64(1, 1))
	if err != nil || v != true {
		t.Errorf("FromBits(1) = %v, %v", v, err)
	}
	v, err = Bool{}.FromBits(nil, bitcodec.FromUint64(0, 1))
	if err != nil || v != false {
		t.Errorf("FromBits(0) = %v, %v", v, err)
	}

	raw, err := Bool{}.ToBits(nil, true, 1)
	if err != nil || !raw.Equal(bitcodec.FromUint64(1, 1)) {
		t.Errorf("ToBits(true) = %v, %v", raw, err)
	}
	if _, err := (Bool{}).ToBits(nil, 1, 1); !errors.IsKind(err, errors.KindConversionError) {
		t.Errorf("non-bool should fail, got %v", err)
	}
}

func TestBytes(t *testing.T) {
	payload := []byte{0xDE, 0xAD}
	v, err := Bytes{}.FromBits(nil, bitcodec.NewValue(payload, 16))
	if err != nil {
		t.Fatalf("FromBits: %v", err)
	}
	if !bytes.Equal(v.([]byte), payload) {
		t.Errorf("FromBits = %x", v)
	}

	if _, err := (Bytes{}).FromBits(nil, bitcodec.FromUint64(1, 3)); !errors.IsKind(err, errors.KindConversionError) {
		t.Errorf("unaligned payload should fail, got %v", err)
	}

	raw, err := Bytes{}.ToBits(nil, payload, 16)
	if err != nil || !bytes.Equal(raw.Bytes(), payload) {
		t.Errorf("ToBits = %v, %v", raw, err)
	}
	if _, err := (Bytes{}).ToBits(nil, payload, 8); !errors.IsKind(err, errors.KindConversionError) {
		t.Errorf("length mismatch should fail, got %v", err)
	}
}

func TestStr(t *testing.T) {
	v, err := Str{}.FromBits(nil, bitcodec.NewValue([]byte("hi"), 16))
	if err != nil || v != "hi" {
		t.Errorf("FromBits = %v, %v", v, err)
	}

	if _, err := (Str{}).FromBits(nil, bitcodec.NewValue([]byte{0xFF, 0xFE}, 16)); !errors.IsKind(err, errors.KindConversionError) {
		t.Errorf("invalid UTF-8 should fail, got %v", err)
	}

	raw, err := Str{}.ToBits(nil, "hi", 16)
	if err != nil || !bytes.Equal(raw.Bytes(), []byte("hi")) {
		t.Errorf("ToBits = %v, %v", raw, err)
	}
}

func TestEnum(t *testing.T) {
	e := NewEnum(map[uint64]string{1: "tcp", 2: "udp"})

	v, err := e.FromBits(nil, bitcodec.FromUint64(2, 8))
	if err != nil || v != "udp" {
		t.Errorf("FromBits = %v, %v", v, err)
	}
	if _, err := e.FromBits(nil, bitcodec.FromUint64(9, 8)); !errors.IsKind(err, errors.KindConversionError) {
		t.Errorf("unknown discriminant should fail, got %v", err)
	}

	raw, err := e.ToBits(nil, "tcp", 8)
	if err != nil || !raw.Equal(bitcodec.FromUint64(1, 8)) {
		t.Errorf("ToBits(label) = %v, %v", raw, err)
	}
	raw, err = e.ToBits(nil, uint64(2), 8)
	if err != nil || !raw.Equal(bitcodec.FromUint64(2, 8)) {
		t.Errorf("ToBits(disc) = %v, %v", raw, err)
	}
	if _, err := e.ToBits(nil, "sctp", 8); !errors.IsKind(err, errors.KindConversionError) {
		t.Errorf("unknown label should fail, got %v", err)
	}
}
