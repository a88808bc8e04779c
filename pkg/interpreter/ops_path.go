package interpreter

import (
	"slices"

	"ycp/interpreter-go/pkg/runtime"
)

func pathOp(i *Interpreter, code runtime.Opcode, args []runtime.Value) runtime.Value {
	p := args[0].(runtime.PathValue)
	switch code {
	case runtime.OpSize:
		if len(args) == 1 {
			return runtime.Int(int64(len(p.Segments)))
		}
	case runtime.OpPlus:
		if len(args) != 2 {
			return runtime.Null
		}
		switch right := args[1].(type) {
		case runtime.PathValue:
			return runtime.PathValue{Segments: slices.Concat(p.Segments, right.Segments)}
		case runtime.StringValue:
			return runtime.PathValue{Segments: slices.Concat(p.Segments, []string{right.Val})}
		}
	case runtime.OpSelect:
		if len(args) < 2 || len(args) > 3 {
			return runtime.Null
		}
		idx, ok := args[1].(runtime.IntegerValue)
		if !ok {
			return runtime.Null
		}
		if idx.Val >= 0 && idx.Val < int64(len(p.Segments)) {
			return runtime.Str(p.Segments[idx.Val])
		}
		return defaultArg(args, 2)
	}
	return runtime.Null
}

// defaultArg returns args[idx] when present, otherwise Void.
func defaultArg(args []runtime.Value, idx int) runtime.Value {
	if idx < len(args) {
		return args[idx]
	}
	return runtime.Void
}
