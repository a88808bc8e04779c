package interpreter

import (
	"ycp/interpreter-go/pkg/runtime"
)

func integerOp(i *Interpreter, code runtime.Opcode, args []runtime.Value) runtime.Value {
	left := args[0].(runtime.IntegerValue)
	if len(args) == 1 {
		switch code {
		case runtime.OpNeg:
			return runtime.Int(-left.Val)
		case runtime.OpBitNot:
			return runtime.Int(^left.Val)
		case runtime.OpToFloat:
			return runtime.Float(float64(left.Val))
		case runtime.OpToInteger:
			return left
		}
		return runtime.Null
	}
	if len(args) != 2 {
		return runtime.Null
	}
	switch right := args[1].(type) {
	case runtime.IntegerValue:
		return integerBinary(code, left.Val, right.Val)
	case runtime.FloatValue:
		switch code {
		case runtime.OpPlus, runtime.OpMinus, runtime.OpMult, runtime.OpDiv:
			return floatBinary(code, float64(left.Val), right.Val)
		}
	}
	return runtime.Null
}

func integerBinary(code runtime.Opcode, a, b int64) runtime.Value {
	switch code {
	case runtime.OpPlus:
		return runtime.Int(a + b)
	case runtime.OpMinus:
		return runtime.Int(a - b)
	case runtime.OpMult:
		return runtime.Int(a * b)
	case runtime.OpDiv:
		if b == 0 {
			return runtime.Errorf("division by zero")
		}
		return runtime.Int(a / b)
	case runtime.OpMod:
		if b == 0 {
			return runtime.Errorf("division by zero")
		}
		return runtime.Int(a % b)
	case runtime.OpBitAnd:
		return runtime.Int(a & b)
	case runtime.OpBitOr:
		return runtime.Int(a | b)
	case runtime.OpBitXor:
		return runtime.Int(a ^ b)
	case runtime.OpLShift, runtime.OpRShift:
		if b < 0 || b > 63 {
			return runtime.Errorf("shift out of range (%d)", b)
		}
		if code == runtime.OpLShift {
			return runtime.Int(a << uint(b))
		}
		return runtime.Int(a >> uint(b))
	}
	return runtime.Null
}
