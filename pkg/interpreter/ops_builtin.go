package interpreter

import (
	"slices"

	"ycp/interpreter-go/pkg/runtime"
)

// builtinOp handles first-class builtin references: CALL applies the
// referenced operator to the bound arguments followed by the extra ones, ADD
// binds one more argument.
func builtinOp(i *Interpreter, code runtime.Opcode, args []runtime.Value) runtime.Value {
	b := args[0].(runtime.BuiltinValue)
	switch code {
	case runtime.OpCall:
		callArgs := slices.Concat(b.Args, args[1:])
		if b.Code == runtime.OpCall || len(callArgs) == 0 {
			return runtime.Null
		}
		if i.depth >= i.maxDepth {
			return runtime.Errorf("call: evaluation depth limit %d exceeded", i.maxDepth)
		}
		i.depth++
		defer func() { i.depth-- }()
		return i.Dispatch(b.Code, callArgs)
	case runtime.OpAdd:
		if len(args) == 2 {
			return runtime.BuiltinValue{Code: b.Code, Args: slices.Concat(b.Args, []runtime.Value{args[1]}), Apply: b.Apply}
		}
	case runtime.OpSize:
		if len(args) == 1 {
			return runtime.Int(int64(len(b.Args)))
		}
	}
	return runtime.Null
}
