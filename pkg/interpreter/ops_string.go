package interpreter

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"ycp/interpreter-go/pkg/runtime"
)

func stringOp(i *Interpreter, code runtime.Opcode, args []runtime.Value) runtime.Value {
	s := args[0].(runtime.StringValue).Val
	switch len(args) {
	case 1:
		switch code {
		case runtime.OpSize:
			return runtime.Int(int64(utf8.RuneCountInString(s)))
		case runtime.OpToUpper:
			return runtime.Str(strings.ToUpper(s))
		case runtime.OpToLower:
			return runtime.Str(strings.ToLower(s))
		case runtime.OpToInteger:
			n, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
			if err != nil {
				return runtime.Void
			}
			return runtime.Int(n)
		case runtime.OpToFloat:
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return runtime.Void
			}
			return runtime.Float(f)
		case runtime.OpToPath:
			return runtime.ParsePath(s)
		}
	case 2:
		switch code {
		case runtime.OpPlus:
			return runtime.Str(s + runtime.ToString(args[1]))
		case runtime.OpFind:
			sub, ok := args[1].(runtime.StringValue)
			if !ok {
				return runtime.Null
			}
			idx := strings.Index(s, sub.Val)
			if idx < 0 {
				return runtime.Int(-1)
			}
			return runtime.Int(int64(utf8.RuneCountInString(s[:idx])))
		case runtime.OpContains:
			sub, ok := args[1].(runtime.StringValue)
			if !ok {
				return runtime.Null
			}
			return runtime.Bool(strings.Contains(s, sub.Val))
		case runtime.OpSubstring:
			return substring(s, args[1], nil)
		}
	case 3:
		if code == runtime.OpSubstring {
			return substring(s, args[1], args[2])
		}
	}
	return runtime.Null
}

// substring counts in runes. A start beyond the end yields "", a missing or
// overlong length runs to the end.
func substring(s string, startArg, lengthArg runtime.Value) runtime.Value {
	start, ok := startArg.(runtime.IntegerValue)
	if !ok {
		return runtime.Null
	}
	if start.Val < 0 {
		return runtime.Errorf("substring: negative offset %d", start.Val)
	}
	runes := []rune(s)
	if start.Val >= int64(len(runes)) {
		return runtime.Str("")
	}
	end := int64(len(runes))
	if lengthArg != nil {
		length, ok := lengthArg.(runtime.IntegerValue)
		if !ok {
			return runtime.Null
		}
		if length.Val < 0 {
			return runtime.Errorf("substring: negative length %d", length.Val)
		}
		if length.Val < end-start.Val {
			end = start.Val + length.Val
		}
	}
	return runtime.Str(string(runes[start.Val:end]))
}
