package main

import (
	"fmt"

	"github.com/wippyai/bitcodec"
	"github.com/wippyai/bitcodec/codec"
	"github.com/wippyai/bitcodec/convert"
	"github.com/wippyai/bitcodec/fieldpath"
)

// Format names a reusable codec description. Root builds a fresh block tree
// so each decode gets independent Deferred identities.
type Format struct {
	Name        string
	Description string
	Root        func() codec.Block
}

var formats = []Format{
	{
		Name:        "ipv4",
		Description: "IPv4 packet header with options",
		Root:        ipv4Root,
	},
	{
		Name:        "tlv",
		Description: "stream of type/length/value records",
		Root:        tlvRoot,
	},
}

func lookupFormat(name string) (Format, error) {
	for _, f := range formats {
		if f.Name == name {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("unknown format %q (use -list)", name)
}

var (
	uintConv  = codec.ConverterExpr(convert.Uint{})
	bytesConv = codec.ConverterExpr(convert.Bytes{})
	strConv   = codec.ConverterExpr(convert.Str{})
)

// counterPath builds per-item field paths like /options/0, /options/1 from a
// counter variable that starts unset.
func counterPath(counter, prefix string) codec.Expr[fieldpath.Path] {
	return func(ctx bitcodec.EvalContext) (fieldpath.Path, error) {
		n := int64(0)
		if v, err := ctx.Variable(counter); err == nil {
			n = v.(int64)
		}
		return fieldpath.New(fmt.Sprintf("%s/%d", prefix, n)), nil
	}
}

func bumpCounter(counter string) codec.BlockFunc {
	return func(ctx codec.Context) error {
		n := int64(0)
		if v, err := ctx.Variable(counter); err == nil {
			n = v.(int64)
		}
		return ctx.SetVariable(counter, n+1)
	}
}

// fieldUint reads a previously decoded unsigned field.
func fieldUint(path string) func(ctx bitcodec.EvalContext) (uint64, error) {
	p := fieldpath.New(path)
	return func(ctx bitcodec.EvalContext) (uint64, error) {
		m, err := ctx.FieldMapping(p)
		if err != nil {
			return 0, err
		}
		u, ok := m.Converted.(uint64)
		if !ok {
			return 0, fmt.Errorf("field %s is %T, not an unsigned integer", path, m.Converted)
		}
		return u, nil
	}
}

func uintField(path string, bits int64) codec.Block {
	return codec.NewField(codec.PathExpr(path), codec.LengthExpr(bits), uintConv, nil)
}

func ipv4Root() codec.Block {
	protocol := convert.NewEnum(map[uint64]string{
		1:  "icmp",
		6:  "tcp",
		17: "udp",
	})

	ihl := fieldUint("/ihl")
	optionBits := func(ctx bitcodec.EvalContext) (int64, error) {
		v, err := ihl(ctx)
		if err != nil {
			return 0, err
		}
		if v <= 5 {
			return 0, nil
		}
		return int64(v-5) * 32, nil
	}

	optionItem := codec.NewGroup(
		codec.NewField(counterPath("opt", "/options"), codec.LengthExpr(8), uintConv, nil),
		bumpCounter("opt"),
	)

	return codec.NewGroup(
		uintField("/version", 4),
		uintField("/ihl", 4),
		uintField("/tos", 8),
		uintField("/total_length", 16),
		uintField("/id", 16),
		uintField("/flags", 3),
		uintField("/frag_offset", 13),
		uintField("/ttl", 8),
		codec.NewField(codec.PathExpr("/protocol"), codec.LengthExpr(8),
			codec.ConverterExpr(protocol), codec.Const[any]("unknown")),
		uintField("/checksum", 16),
		uintField("/src", 32),
		uintField("/dst", 32),
		codec.NewBuffer(optionBits, codec.NewFill(optionItem)),
	)
}

func tlvRoot() codec.Block {
	lenBits := func(ctx bitcodec.EvalContext) (int64, error) {
		v, err := fieldUint("/len")(ctx)
		if err != nil {
			return 0, err
		}
		return int64(v) * 8, nil
	}
	lenPositive := func(ctx bitcodec.EvalContext) (bool, error) {
		v, err := fieldUint("/len")(ctx)
		return err == nil && v > 0, nil
	}
	unknownType := func(ctx bitcodec.EvalContext) (bool, error) {
		v, err := fieldUint("/type")(ctx)
		if err != nil {
			return false, err
		}
		return v != 1 && v != 2, nil
	}

	record := codec.NewContainer(counterPath("rec", "/records"), codec.NewGroup(
		uintField("/type", 8),
		uintField("/len", 8),
		codec.NewChoice(codec.FieldExpr("/type"),
			codec.NewCase(
				codec.NewConditional(lenPositive,
					codec.NewField(codec.PathExpr("/text"), lenBits, strConv, nil)),
				codec.Const[any](uint64(1))),
			codec.NewCase(
				codec.NewConditional(lenPositive,
					codec.NewField(codec.PathExpr("/data"), lenBits, bytesConv, nil)),
				codec.Const[any](uint64(2))),
		),
		// skip the payload of record types this description does not know
		codec.NewConditional(unknownType, codec.NewOffset(lenBits)),
	))

	return codec.NewFill(codec.NewGroup(record, bumpCounter("rec")))
}
