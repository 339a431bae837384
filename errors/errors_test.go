package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseDecode,
				Kind:     KindDuplicateKey,
				Path:     "/header/len",
				Position: 16,
				HasPos:   true,
				Detail:   "field already mapped",
			},
			contains: []string{"[decode]", "duplicate_key", "/header/len", "bit 16", "field already mapped"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseEncode,
				Kind:  KindStreamError,
			},
			contains: []string{"[encode]", "stream_error"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseStream,
				Kind:   KindStreamError,
				Detail: "read past end",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[stream]", "stream_error", "read past end", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindConversionError,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindKeyNotFound,
		Path:  "/x",
	}

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindKeyNotFound}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseEncode, Kind: KindKeyNotFound}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseDecode, Kind: KindDuplicateKey}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseDecode, Kind: KindKeyNotFound}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match same phase and kind")
	}
}

func TestIsKind(t *testing.T) {
	inner := KeyNotFound(PhaseEval, "variable", "i")
	wrapped := New(PhaseDecode, KindConversionError).Cause(inner).Build()

	if !IsKind(inner, KindKeyNotFound) {
		t.Error("IsKind should match direct error")
	}
	if !IsKind(wrapped, KindConversionError) {
		t.Error("IsKind should match outer kind")
	}
	if !IsKind(wrapped, KindKeyNotFound) {
		t.Error("IsKind should match wrapped kind")
	}
	if IsKind(wrapped, KindDuplicateKey) {
		t.Error("IsKind should not match absent kind")
	}
	if IsKind(nil, KindKeyNotFound) {
		t.Error("IsKind on nil should be false")
	}
	if IsKind(errors.New("plain"), KindKeyNotFound) {
		t.Error("IsKind on plain error should be false")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := New(PhaseEncode, KindConversionError).
		Path("/a/b").
		Position(12).
		Value(uint64(300)).
		Detail("value %d overflows %d bits", 300, 8).
		Cause(cause).
		Build()

	if err.Phase != PhaseEncode || err.Kind != KindConversionError {
		t.Fatalf("wrong phase/kind: %v/%v", err.Phase, err.Kind)
	}
	if err.Path != "/a/b" {
		t.Errorf("wrong path: %q", err.Path)
	}
	if !err.HasPos || err.Position != 12 {
		t.Errorf("wrong position: %d (has=%v)", err.Position, err.HasPos)
	}
	if err.Detail != "value 300 overflows 8 bits" {
		t.Errorf("wrong detail: %q", err.Detail)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not chained")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	if e := KeyNotFound(PhaseEval, "variable", "i"); e.Kind != KindKeyNotFound {
		t.Errorf("KeyNotFound kind = %v", e.Kind)
	}
	if e := DuplicateKey(PhaseDecode, "field", "/x"); e.Kind != KindDuplicateKey || e.Path != "/x" {
		t.Errorf("DuplicateKey = %+v", e)
	}
	if e := PositionOutOfWindow(PhaseDecode, 9, 8); e.Kind != KindPositionOutOfWindow || e.Position != 9 {
		t.Errorf("PositionOutOfWindow = %+v", e)
	}
	if e := ArgumentInvalid(PhaseDecode, "length must be positive, got %d", 0); !strings.Contains(e.Detail, "got 0") {
		t.Errorf("ArgumentInvalid detail = %q", e.Detail)
	}
}
