package interpreter

import (
	"slices"

	"ycp/interpreter-go/pkg/runtime"
)

func listOp(i *Interpreter, code runtime.Opcode, args []runtime.Value) runtime.Value {
	if code == runtime.OpForeach {
		return listForeach(i, args)
	}
	l := args[0].(runtime.ListValue)
	switch len(args) {
	case 1:
		switch code {
		case runtime.OpSize:
			return runtime.Int(int64(l.Len()))
		case runtime.OpFlatten:
			return flatten(l)
		case runtime.OpToSet:
			return toSet(l.Elements)
		}
	case 2:
		switch code {
		case runtime.OpAdd:
			return runtime.ListValue{Elements: slices.Concat(l.Elements, []runtime.Value{args[1]})}
		case runtime.OpPlus:
			if right, ok := args[1].(runtime.ListValue); ok {
				return runtime.ListValue{Elements: slices.Concat(l.Elements, right.Elements)}
			}
			return runtime.ListValue{Elements: slices.Concat(l.Elements, []runtime.Value{args[1]})}
		case runtime.OpContains:
			return runtime.Bool(slices.ContainsFunc(l.Elements, func(v runtime.Value) bool {
				return runtime.Equal(v, args[1])
			}))
		case runtime.OpRemove:
			idx, ok := args[1].(runtime.IntegerValue)
			if !ok {
				return runtime.Null
			}
			if idx.Val < 0 || idx.Val >= int64(l.Len()) {
				return l
			}
			return runtime.ListValue{Elements: slices.Delete(slices.Clone(l.Elements), int(idx.Val), int(idx.Val)+1)}
		case runtime.OpMerge:
			right, ok := args[1].(runtime.ListValue)
			if !ok {
				return runtime.Null
			}
			return union(l.Elements, right.Elements)
		}
	case 3:
		switch code {
		case runtime.OpFilter:
			return listFilter(i, l, args[1], args[2])
		case runtime.OpMaplist:
			return listMap(i, l, args[1], args[2])
		}
	}
	if code == runtime.OpSelect && (len(args) == 2 || len(args) == 3) {
		idx, ok := args[1].(runtime.IntegerValue)
		if !ok {
			return runtime.Null
		}
		if idx.Val >= 0 && idx.Val < int64(l.Len()) {
			return l.Elements[idx.Val]
		}
		return defaultArg(args, 2)
	}
	return runtime.Null
}

// listForeach evaluates body once per element with the variable bound and
// yields the last result, or Void for an empty list.
func listForeach(i *Interpreter, args []runtime.Value) runtime.Value {
	name, ok := bindingName(args[0])
	if !ok {
		return runtime.Null
	}
	l := args[1].(runtime.ListValue)
	var result runtime.Value = runtime.Void
	for _, elem := range l.Elements {
		result = i.evaluateWith(args[2], binding{name, elem})
		if runtime.IsError(result) {
			return result
		}
	}
	return result
}

func listFilter(i *Interpreter, l runtime.ListValue, variable, body runtime.Value) runtime.Value {
	name, ok := bindingName(variable)
	if !ok {
		return runtime.Null
	}
	out := make([]runtime.Value, 0, l.Len())
	for _, elem := range l.Elements {
		keep, errVal := i.predicate(runtime.OpFilter, body, binding{name, elem})
		if errVal != nil {
			return errVal
		}
		if keep {
			out = append(out, elem)
		}
	}
	return runtime.ListValue{Elements: out}
}

func listMap(i *Interpreter, l runtime.ListValue, variable, body runtime.Value) runtime.Value {
	name, ok := bindingName(variable)
	if !ok {
		return runtime.Null
	}
	out := make([]runtime.Value, 0, l.Len())
	for _, elem := range l.Elements {
		v := i.evaluateWith(body, binding{name, elem})
		if runtime.IsError(v) {
			return v
		}
		out = append(out, v)
	}
	return runtime.ListValue{Elements: out}
}

func flatten(l runtime.ListValue) runtime.Value {
	var out []runtime.Value
	for idx, elem := range l.Elements {
		inner, ok := elem.(runtime.ListValue)
		if !ok {
			return runtime.Errorf("flatten: element %d is %s, not a list", idx, elem.Kind())
		}
		out = append(out, inner.Elements...)
	}
	return runtime.ListValue{Elements: out}
}

// toSet returns the elements in Compare order without duplicates.
func toSet(elements []runtime.Value) runtime.Value {
	out := slices.Clone(elements)
	slices.SortFunc(out, func(a, b runtime.Value) int { return int(runtime.Compare(a, b)) })
	out = slices.CompactFunc(out, runtime.Equal)
	return runtime.ListValue{Elements: out}
}

// union keeps the first occurrence of every element of left followed by right.
func union(left, right []runtime.Value) runtime.Value {
	out := make([]runtime.Value, 0, len(left)+len(right))
	for _, v := range slices.Concat(left, right) {
		if !slices.ContainsFunc(out, func(seen runtime.Value) bool { return runtime.Equal(seen, v) }) {
			out = append(out, v)
		}
	}
	return runtime.ListValue{Elements: out}
}
