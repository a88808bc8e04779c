package interpreter

import (
	"ycp/interpreter-go/pkg/runtime"
)

// operatorFunc is the contract shared by the per-kind evaluators: args are
// already prepared and must not be modified. Null means the opcode does not
// apply to the operand shape; an ErrorValue reports misuse.
type operatorFunc func(i *Interpreter, code runtime.Opcode, args []runtime.Value) runtime.Value

type sortFunc func(i *Interpreter, args []runtime.Value) runtime.Value

// operators routes type-specific opcodes to one evaluator per value kind.
type operators struct {
	integer operatorFunc
	float   operatorFunc
	str     operatorFunc
	path    operatorFunc
	list    operatorFunc
	mapping operatorFunc
	term    operatorFunc
	builtin operatorFunc
	sort    sortFunc
}

func defaultOperators() operators {
	return operators{
		integer: integerOp,
		float:   floatOp,
		str:     stringOp,
		path:    pathOp,
		list:    listOp,
		mapping: mapOp,
		term:    termOp,
		builtin: builtinOp,
		sort:    sortValues,
	}
}

// Dispatch applies the operator code to already evaluated arguments.
// Relational operators, FOREACH, SORT and NLOCALE are handled without regard
// to the operand kinds; every other opcode is routed by the kind of the first
// argument. The result is runtime.Null when the operator does not apply.
func (i *Interpreter) Dispatch(code runtime.Opcode, args []runtime.Value) runtime.Value {
	if len(args) == 0 {
		return runtime.Null
	}
	switch code {
	case runtime.OpEQ, runtime.OpNEQ, runtime.OpLT, runtime.OpGT, runtime.OpLE, runtime.OpGE:
		return relational(code, args)
	case runtime.OpForeach:
		if len(args) == 4 {
			if _, ok := args[2].(runtime.MapValue); ok {
				return i.ops.mapping(i, code, args)
			}
		}
		if len(args) == 3 {
			if _, ok := args[1].(runtime.ListValue); ok {
				return i.ops.list(i, code, args)
			}
		}
		return runtime.Null
	case runtime.OpSort:
		return i.ops.sort(i, args)
	case runtime.OpNLocale:
		return newLocale(args)
	}

	first := args[0]
	if first == nil {
		first = runtime.Null
	}
	switch v := first.(type) {
	case runtime.BoolValue:
		if code == runtime.OpNot && len(args) == 1 {
			return runtime.Bool(!v.Val)
		}
		return runtime.Null
	case runtime.IntegerValue:
		return i.ops.integer(i, code, args)
	case runtime.FloatValue:
		return i.ops.float(i, code, args)
	case runtime.StringValue:
		return i.ops.str(i, code, args)
	case runtime.PathValue:
		return i.ops.path(i, code, args)
	case runtime.ListValue:
		return i.ops.list(i, code, args)
	case runtime.MapValue:
		return i.ops.mapping(i, code, args)
	case runtime.TermValue:
		return i.ops.term(i, code, args)
	case runtime.ByteblockValue:
		if code == runtime.OpSize {
			return runtime.Int(int64(v.Size()))
		}
		return runtime.Null
	case runtime.VoidValue:
		if code == runtime.OpLookup {
			return i.ops.mapping(i, code, args)
		}
		return runtime.Void
	case runtime.BuiltinValue:
		return i.ops.builtin(i, code, args)
	default:
		i.logger.Error("dispatch: unsupported operand kind",
			"code", code.String(),
			"kind", first.Kind().String(),
		)
		return runtime.Null
	}
}

func relational(code runtime.Opcode, args []runtime.Value) runtime.Value {
	if len(args) != 2 {
		return runtime.Null
	}
	a, b := args[0], args[1]
	switch code {
	case runtime.OpEQ:
		return runtime.Bool(runtime.Equal(a, b))
	case runtime.OpNEQ:
		return runtime.Bool(!runtime.Equal(a, b))
	case runtime.OpLT:
		return runtime.Bool(runtime.Compare(a, b) == runtime.OrderLess)
	case runtime.OpGT:
		return runtime.Bool(runtime.Compare(a, b) == runtime.OrderGreater)
	case runtime.OpLE:
		return runtime.Bool(runtime.Compare(a, b) != runtime.OrderGreater)
	default:
		return runtime.Bool(runtime.Compare(a, b) != runtime.OrderLess)
	}
}

func newLocale(args []runtime.Value) runtime.Value {
	if len(args) == 3 {
		singular, ok1 := args[0].(runtime.StringValue)
		plural, ok2 := args[1].(runtime.StringValue)
		count, ok3 := args[2].(runtime.IntegerValue)
		if ok1 && ok2 && ok3 {
			return runtime.Locale(singular.Val, plural.Val, count.Val)
		}
	}
	return runtime.Errorf("Wrong args for nlocale: expected (string, string, integer), got (%s)", runtime.KindNames(args))
}
