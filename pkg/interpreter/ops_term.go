package interpreter

import (
	"slices"

	"ycp/interpreter-go/pkg/runtime"
)

func termOp(i *Interpreter, code runtime.Opcode, args []runtime.Value) runtime.Value {
	t := args[0].(runtime.TermValue)
	switch code {
	case runtime.OpSize:
		if len(args) == 1 {
			return runtime.Int(int64(len(t.Args)))
		}
	case runtime.OpSymbol:
		if len(args) == 1 {
			return runtime.Str(t.Name)
		}
	case runtime.OpArgs:
		if len(args) == 1 {
			return runtime.List(t.Args...)
		}
	case runtime.OpAdd:
		if len(args) == 2 {
			return runtime.TermValue{Name: t.Name, Args: slices.Concat(t.Args, []runtime.Value{args[1]})}
		}
	case runtime.OpSelect:
		if len(args) == 2 || len(args) == 3 {
			idx, ok := args[1].(runtime.IntegerValue)
			if !ok {
				return runtime.Null
			}
			if idx.Val >= 0 && idx.Val < int64(len(t.Args)) {
				return t.Args[idx.Val]
			}
			return defaultArg(args, 2)
		}
	}
	return runtime.Null
}
