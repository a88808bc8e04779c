package interpreter

import (
	"math"

	"ycp/interpreter-go/pkg/runtime"
)

func floatOp(i *Interpreter, code runtime.Opcode, args []runtime.Value) runtime.Value {
	left := args[0].(runtime.FloatValue)
	if len(args) == 1 {
		switch code {
		case runtime.OpNeg:
			return runtime.Float(-left.Val)
		case runtime.OpToFloat:
			return left
		case runtime.OpToInteger:
			if math.IsNaN(left.Val) || math.IsInf(left.Val, 0) ||
				left.Val >= math.MaxInt64 || left.Val < math.MinInt64 {
				return runtime.Errorf("tointeger: %s out of range", runtime.FormatFloat(left.Val))
			}
			return runtime.Int(int64(left.Val))
		}
		return runtime.Null
	}
	if len(args) != 2 {
		return runtime.Null
	}
	switch right := args[1].(type) {
	case runtime.FloatValue:
		return floatBinary(code, left.Val, right.Val)
	case runtime.IntegerValue:
		return floatBinary(code, left.Val, float64(right.Val))
	}
	return runtime.Null
}

func floatBinary(code runtime.Opcode, a, b float64) runtime.Value {
	switch code {
	case runtime.OpPlus:
		return runtime.Float(a + b)
	case runtime.OpMinus:
		return runtime.Float(a - b)
	case runtime.OpMult:
		return runtime.Float(a * b)
	case runtime.OpDiv:
		if b == 0 {
			return runtime.Errorf("division by zero")
		}
		return runtime.Float(a / b)
	}
	return runtime.Null
}
