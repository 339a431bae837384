package convert

import (
	"github.com/wippyai/bitcodec"
	"github.com/wippyai/bitcodec/errors"
)

// Enum maps unsigned discriminants to string labels. Decoding yields the
// label; encoding accepts either the label or the discriminant.
type Enum struct {
	labels map[uint64]string
	values map[string]uint64
}

// NewEnum builds an enum converter from a discriminant-to-label table.
func NewEnum(labels map[uint64]string) *Enum {
	values := make(map[string]uint64, len(labels))
	for v, l := range labels {
		values[l] = v
	}
	return &Enum{labels: labels, values: values}
}

func (e *Enum) FromBits(_ bitcodec.EvalContext, raw bitcodec.Value) (any, error) {
	u, err := raw.Uint64()
	if err != nil {
		return nil, err
	}
	label, ok := e.labels[u]
	if !ok {
		return nil, errors.New(errors.PhaseDecode, errors.KindConversionError).
			Value(u).
			Detail("discriminant %d has no label", u).
			Build()
	}
	return label, nil
}

func (e *Enum) ToBits(ctx bitcodec.EvalContext, value any, bits int64) (bitcodec.Value, error) {
	if label, ok := value.(string); ok {
		u, ok := e.values[label]
		if !ok {
			return bitcodec.Value{}, errors.New(errors.PhaseEncode, errors.KindConversionError).
				Value(label).
				Detail("label %q has no discriminant", label).
				Build()
		}
		return Uint{}.ToBits(ctx, u, bits)
	}
	return Uint{}.ToBits(ctx, value, bits)
}
