package interpreter

import (
	"slices"

	"ycp/interpreter-go/pkg/runtime"
)

// sortValues is the stable sort behind SORT. sort(list) orders by Compare and
// sort(map) yields the keys in order. sort(x, y, list, expr) binds a pair of
// elements to x and y and treats a true expr as "x goes first".
func sortValues(i *Interpreter, args []runtime.Value) runtime.Value {
	switch len(args) {
	case 1:
		switch v := args[0].(type) {
		case runtime.ListValue:
			out := slices.Clone(v.Elements)
			slices.SortStableFunc(out, func(a, b runtime.Value) int { return int(runtime.Compare(a, b)) })
			return runtime.ListValue{Elements: out}
		case runtime.MapValue:
			return runtime.ListValue{Elements: v.Keys()}
		}
	case 4:
		l, ok := args[2].(runtime.ListValue)
		if !ok {
			return runtime.Null
		}
		x, ok1 := bindingName(args[0])
		y, ok2 := bindingName(args[1])
		if !ok1 || !ok2 {
			return runtime.Null
		}
		return sortWith(i, l, x, y, args[3])
	}
	return runtime.Null
}

func sortWith(i *Interpreter, l runtime.ListValue, x, y string, expr runtime.Value) runtime.Value {
	var failure runtime.Value
	before := func(a, b runtime.Value) bool {
		if failure != nil {
			return false
		}
		ok, errVal := i.predicate(runtime.OpSort, expr, binding{x, a}, binding{y, b})
		if errVal != nil {
			failure = errVal
		}
		return ok
	}
	out := slices.Clone(l.Elements)
	slices.SortStableFunc(out, func(a, b runtime.Value) int {
		switch {
		case before(a, b):
			return -1
		case before(b, a):
			return 1
		}
		return 0
	})
	if failure != nil {
		return failure
	}
	return runtime.ListValue{Elements: out}
}
