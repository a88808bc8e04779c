package interpreter

import (
	"ycp/interpreter-go/pkg/runtime"
)

// mapOp also serves LOOKUP on Void, which behaves like a lookup in an empty
// map.
func mapOp(i *Interpreter, code runtime.Opcode, args []runtime.Value) runtime.Value {
	if code == runtime.OpForeach {
		return mapForeach(i, args)
	}
	var m runtime.MapValue
	switch v := args[0].(type) {
	case runtime.MapValue:
		m = v
	case runtime.VoidValue:
		if code != runtime.OpLookup {
			return runtime.Null
		}
	default:
		return runtime.Null
	}

	switch code {
	case runtime.OpSize:
		if len(args) == 1 {
			return runtime.Int(int64(m.Len()))
		}
	case runtime.OpLookup:
		if len(args) == 2 || len(args) == 3 {
			if v, ok := m.Get(args[1]); ok {
				return v
			}
			return defaultArg(args, 2)
		}
	case runtime.OpHasKey:
		if len(args) == 2 {
			_, ok := m.Get(args[1])
			return runtime.Bool(ok)
		}
	case runtime.OpAdd:
		if len(args) == 3 {
			return m.With(args[1], args[2])
		}
	case runtime.OpRemove:
		if len(args) == 2 {
			return m.Without(args[1])
		}
	case runtime.OpPlus, runtime.OpMerge:
		if len(args) == 2 {
			if right, ok := args[1].(runtime.MapValue); ok {
				return mergeMaps(m, right)
			}
		}
	case runtime.OpFilter:
		if len(args) == 4 {
			return mapFilter(i, m, args[1], args[2], args[3])
		}
	case runtime.OpMaplist:
		if len(args) == 4 {
			return mapMap(i, m, args[1], args[2], args[3])
		}
	}
	return runtime.Null
}

// mergeMaps binds every entry of right into left; right wins on conflicts.
func mergeMaps(left, right runtime.MapValue) runtime.MapValue {
	entries := append(left.Entries(), right.Entries()...)
	return runtime.NewMap(entries...)
}

// mapForeach evaluates body once per entry in key order with the key and
// value variables bound and yields the last result.
func mapForeach(i *Interpreter, args []runtime.Value) runtime.Value {
	keyName, ok1 := bindingName(args[0])
	valName, ok2 := bindingName(args[1])
	if !ok1 || !ok2 {
		return runtime.Null
	}
	m := args[2].(runtime.MapValue)
	var result runtime.Value = runtime.Void
	for _, e := range m.Entries() {
		result = i.evaluateWith(args[3], binding{keyName, e.Key}, binding{valName, e.Value})
		if runtime.IsError(result) {
			return result
		}
	}
	return result
}

func mapFilter(i *Interpreter, m runtime.MapValue, keyVar, valVar, body runtime.Value) runtime.Value {
	keyName, ok1 := bindingName(keyVar)
	valName, ok2 := bindingName(valVar)
	if !ok1 || !ok2 {
		return runtime.Null
	}
	var kept []runtime.MapEntry
	for _, e := range m.Entries() {
		keep, errVal := i.predicate(runtime.OpFilter, body, binding{keyName, e.Key}, binding{valName, e.Value})
		if errVal != nil {
			return errVal
		}
		if keep {
			kept = append(kept, e)
		}
	}
	return runtime.NewMap(kept...)
}

func mapMap(i *Interpreter, m runtime.MapValue, keyVar, valVar, body runtime.Value) runtime.Value {
	keyName, ok1 := bindingName(keyVar)
	valName, ok2 := bindingName(valVar)
	if !ok1 || !ok2 {
		return runtime.Null
	}
	out := make([]runtime.Value, 0, m.Len())
	for _, e := range m.Entries() {
		v := i.evaluateWith(body, binding{keyName, e.Key}, binding{valName, e.Value})
		if runtime.IsError(v) {
			return v
		}
		out = append(out, v)
	}
	return runtime.ListValue{Elements: out}
}
