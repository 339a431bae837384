package convert

import (
	"unicode/utf8"

	"github.com/wippyai/bitcodec"
	"github.com/wippyai/bitcodec/errors"
)

// Uint converts between raw bits and an unsigned big-endian integer,
// carried as uint64.
type Uint struct{}

func (Uint) FromBits(_ bitcodec.EvalContext, raw bitcodec.Value) (any, error) {
	return raw.Uint64()
}

func (Uint) ToBits(_ bitcodec.EvalContext, value any, bits int64) (bitcodec.Value, error) {
	u, err := toUint64(value)
	if err != nil {
		return bitcodec.Value{}, err
	}
	if bits < 64 && u >= 1<<uint(bits) {
		return bitcodec.Value{}, errors.New(errors.PhaseEncode, errors.KindConversionError).
			Value(u).
			Detail("value %d does not fit in %d bits", u, bits).
			Build()
	}
	if bits > 64 {
		return bitcodec.Value{}, errors.New(errors.PhaseEncode, errors.KindConversionError).
			Detail("uint converter supports at most 64 bits, got %d", bits).
			Build()
	}
	return bitcodec.FromUint64(u, bits), nil
}

// Int converts between raw bits and a two's complement signed integer,
// carried as int64. Decoding sign-extends from the field width.
type Int struct{}

func (Int) FromBits(_ bitcodec.EvalContext, raw bitcodec.Value) (any, error) {
	u, err := raw.Uint64()
	if err != nil {
		return nil, err
	}
	if n := raw.Len(); n > 0 && n < 64 && u&(1<<uint(n-1)) != 0 {
		u |= ^uint64(0) << uint(n)
	}
	return int64(u), nil
}

func (Int) ToBits(_ bitcodec.EvalContext, value any, bits int64) (bitcodec.Value, error) {
	i, err := toInt64(value)
	if err != nil {
		return bitcodec.Value{}, err
	}
	if bits > 64 {
		return bitcodec.Value{}, errors.New(errors.PhaseEncode, errors.KindConversionError).
			Detail("int converter supports at most 64 bits, got %d", bits).
			Build()
	}
	if bits < 64 {
		min := int64(-1) << uint(bits-1)
		max := int64(1)<<uint(bits-1) - 1
		if i < min || i > max {
			return bitcodec.Value{}, errors.New(errors.PhaseEncode, errors.KindConversionError).
				Value(i).
				Detail("value %d does not fit in %d signed bits", i, bits).
				Build()
		}
	}
	return bitcodec.FromUint64(uint64(i), bits), nil
}

// Bool converts between raw bits and a bool: any nonzero payload decodes to
// true, true encodes as the value 1 (only the lowest bit of the field set).
type Bool struct{}

func (Bool) FromBits(_ bitcodec.EvalContext, raw bitcodec.Value) (any, error) {
	u, err := raw.Uint64()
	if err != nil {
		return nil, err
	}
	return u != 0, nil
}

func (Bool) ToBits(_ bitcodec.EvalContext, value any, bits int64) (bitcodec.Value, error) {
	b, ok := value.(bool)
	if !ok {
		return bitcodec.Value{}, errors.New(errors.PhaseEncode, errors.KindConversionError).
			Value(value).
			Detail("bool converter cannot encode %T", value).
			Build()
	}
	var u uint64
	if b {
		u = 1
	}
	return bitcodec.FromUint64(u, bits), nil
}

// Bytes passes the raw payload through as a byte slice; the field width must
// be a whole number of bytes.
type Bytes struct{}

func (Bytes) FromBits(_ bitcodec.EvalContext, raw bitcodec.Value) (any, error) {
	if raw.Len()%8 != 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindConversionError).
			Detail("byte payload of %d bits is not byte-aligned", raw.Len()).
			Build()
	}
	return raw.Bytes(), nil
}

func (Bytes) ToBits(_ bitcodec.EvalContext, value any, bits int64) (bitcodec.Value, error) {
	b, ok := value.([]byte)
	if !ok {
		return bitcodec.Value{}, errors.New(errors.PhaseEncode, errors.KindConversionError).
			Value(value).
			Detail("bytes converter cannot encode %T", value).
			Build()
	}
	if bits != int64(len(b))*8 {
		return bitcodec.Value{}, errors.New(errors.PhaseEncode, errors.KindConversionError).
			Detail("%d bytes do not fill %d bits", len(b), bits).
			Build()
	}
	return bitcodec.NewValue(b, bits), nil
}

// Str converts between raw bits and a UTF-8 string; payloads must be
// byte-aligned and valid UTF-8.
type Str struct{}

func (Str) FromBits(_ bitcodec.EvalContext, raw bitcodec.Value) (any, error) {
	if raw.Len()%8 != 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindConversionError).
			Detail("string payload of %d bits is not byte-aligned", raw.Len()).
			Build()
	}
	data := raw.Bytes()
	if !utf8.Valid(data) {
		return nil, errors.New(errors.PhaseDecode, errors.KindConversionError).
			Detail("invalid UTF-8 sequence: %x", preview(data)).
			Build()
	}
	return string(data), nil
}

func (Str) ToBits(_ bitcodec.EvalContext, value any, bits int64) (bitcodec.Value, error) {
	s, ok := value.(string)
	if !ok {
		return bitcodec.Value{}, errors.New(errors.PhaseEncode, errors.KindConversionError).
			Value(value).
			Detail("string converter cannot encode %T", value).
			Build()
	}
	if !utf8.ValidString(s) {
		return bitcodec.Value{}, errors.New(errors.PhaseEncode, errors.KindConversionError).
			Detail("invalid UTF-8 sequence: %x", preview([]byte(s))).
			Build()
	}
	if bits != int64(len(s))*8 {
		return bitcodec.Value{}, errors.New(errors.PhaseEncode, errors.KindConversionError).
			Detail("string of %d bytes does not fill %d bits", len(s), bits).
			Build()
	}
	return bitcodec.NewValue([]byte(s), bits), nil
}

func preview(data []byte) []byte {
	if len(data) > 32 {
		return data[:32]
	}
	return data
}

func toUint64(value any) (uint64, error) {
	switch v := value.(type) {
	case uint64:
		return v, nil
	case uint32:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint8:
		return uint64(v), nil
	case uint:
		return uint64(v), nil
	case int64, int32, int16, int8, int:
		i, _ := toInt64(v)
		if i < 0 {
			return 0, errors.New(errors.PhaseEncode, errors.KindConversionError).
				Value(v).
				Detail("negative value %d for unsigned field", i).
				Build()
		}
		return uint64(i), nil
	}
	return 0, errors.New(errors.PhaseEncode, errors.KindConversionError).
		Value(value).
		Detail("cannot encode %T as unsigned integer", value).
		Build()
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int:
		return int64(v), nil
	case uint64:
		if v > 1<<63-1 {
			return 0, errors.New(errors.PhaseEncode, errors.KindConversionError).
				Value(v).
				Detail("value %d overflows int64", v).
				Build()
		}
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint:
		return toInt64(uint64(v))
	}
	return 0, errors.New(errors.PhaseEncode, errors.KindConversionError).
		Value(value).
		Detail("cannot encode %T as signed integer", value).
		Build()
}
