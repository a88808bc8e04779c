package interpreter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ycp/interpreter-go/pkg/runtime"
)

type opCase struct {
	name string
	code runtime.Opcode
	args []runtime.Value
	want runtime.Value
}

func runOpCases(t *testing.T, cases []opCase) {
	t.Helper()
	interp, _ := newTestInterpreter(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := interp.Dispatch(tc.code, tc.args)
			if tc.want == nil {
				assert.True(t, runtime.IsNull(got), "got %s", runtime.Format(got))
				return
			}
			assert.True(t, runtime.Equal(tc.want, got), "want %s, got %s", runtime.Format(tc.want), runtime.Format(got))
		})
	}
}

func vals(values ...runtime.Value) []runtime.Value { return values }

func assertErrorValue(t *testing.T, v runtime.Value, fragment string) {
	t.Helper()
	errVal, ok := v.(runtime.ErrorValue)
	require.True(t, ok, "want error, got %s", runtime.Format(v))
	assert.Contains(t, errVal.Message, fragment)
}

func TestIntegerOps(t *testing.T) {
	runOpCases(t, []opCase{
		{"plus", runtime.OpPlus, vals(runtime.Int(2), runtime.Int(3)), runtime.Int(5)},
		{"minus", runtime.OpMinus, vals(runtime.Int(2), runtime.Int(3)), runtime.Int(-1)},
		{"mult", runtime.OpMult, vals(runtime.Int(4), runtime.Int(3)), runtime.Int(12)},
		{"div truncates", runtime.OpDiv, vals(runtime.Int(7), runtime.Int(2)), runtime.Int(3)},
		{"mod", runtime.OpMod, vals(runtime.Int(7), runtime.Int(3)), runtime.Int(1)},
		{"neg", runtime.OpNeg, vals(runtime.Int(7)), runtime.Int(-7)},
		{"bitand", runtime.OpBitAnd, vals(runtime.Int(6), runtime.Int(3)), runtime.Int(2)},
		{"bitor", runtime.OpBitOr, vals(runtime.Int(6), runtime.Int(3)), runtime.Int(7)},
		{"bitxor", runtime.OpBitXor, vals(runtime.Int(6), runtime.Int(3)), runtime.Int(5)},
		{"bitnot", runtime.OpBitNot, vals(runtime.Int(0)), runtime.Int(-1)},
		{"lshift", runtime.OpLShift, vals(runtime.Int(1), runtime.Int(4)), runtime.Int(16)},
		{"rshift", runtime.OpRShift, vals(runtime.Int(16), runtime.Int(2)), runtime.Int(4)},
		{"tofloat", runtime.OpToFloat, vals(runtime.Int(2)), runtime.Float(2)},
		{"tointeger", runtime.OpToInteger, vals(runtime.Int(2)), runtime.Int(2)},
		{"promotes to float", runtime.OpPlus, vals(runtime.Int(1), runtime.Float(0.5)), runtime.Float(1.5)},
		{"string operand", runtime.OpPlus, vals(runtime.Int(1), runtime.Str("x")), nil},
		{"unknown opcode", runtime.OpSize, vals(runtime.Int(1)), nil},
	})

	interp, _ := newTestInterpreter(t)
	assertErrorValue(t, interp.Dispatch(runtime.OpDiv, vals(runtime.Int(1), runtime.Int(0))), "division by zero")
	assertErrorValue(t, interp.Dispatch(runtime.OpMod, vals(runtime.Int(1), runtime.Int(0))), "division by zero")
	assertErrorValue(t, interp.Dispatch(runtime.OpLShift, vals(runtime.Int(1), runtime.Int(64))), "shift out of range")
}

func TestFloatOps(t *testing.T) {
	runOpCases(t, []opCase{
		{"plus", runtime.OpPlus, vals(runtime.Float(1.5), runtime.Float(2)), runtime.Float(3.5)},
		{"minus int", runtime.OpMinus, vals(runtime.Float(1.5), runtime.Int(1)), runtime.Float(0.5)},
		{"mult", runtime.OpMult, vals(runtime.Float(1.5), runtime.Float(2)), runtime.Float(3)},
		{"div", runtime.OpDiv, vals(runtime.Float(3), runtime.Float(2)), runtime.Float(1.5)},
		{"neg", runtime.OpNeg, vals(runtime.Float(3)), runtime.Float(-3)},
		{"tointeger truncates", runtime.OpToInteger, vals(runtime.Float(-3.7)), runtime.Int(-3)},
		{"mod unsupported", runtime.OpMod, vals(runtime.Float(3), runtime.Float(2)), nil},
	})

	interp, _ := newTestInterpreter(t)
	assertErrorValue(t, interp.Dispatch(runtime.OpDiv, vals(runtime.Float(1), runtime.Float(0))), "division by zero")
	assertErrorValue(t, interp.Dispatch(runtime.OpToInteger, vals(runtime.Float(math.Inf(1)))), "out of range")
}

func TestStringOps(t *testing.T) {
	runOpCases(t, []opCase{
		{"plus string", runtime.OpPlus, vals(runtime.Str("a"), runtime.Str("b")), runtime.Str("ab")},
		{"plus integer", runtime.OpPlus, vals(runtime.Str("n="), runtime.Int(4)), runtime.Str("n=4")},
		{"plus list", runtime.OpPlus, vals(runtime.Str("l="), runtime.List(runtime.Str("x"))), runtime.Str(`l=["x"]`)},
		{"size counts runes", runtime.OpSize, vals(runtime.Str("grüß")), runtime.Int(4)},
		{"find", runtime.OpFind, vals(runtime.Str("grüße"), runtime.Str("ße")), runtime.Int(3)},
		{"find missing", runtime.OpFind, vals(runtime.Str("abc"), runtime.Str("x")), runtime.Int(-1)},
		{"substring", runtime.OpSubstring, vals(runtime.Str("abcdef"), runtime.Int(2)), runtime.Str("cdef")},
		{"substring length", runtime.OpSubstring, vals(runtime.Str("abcdef"), runtime.Int(1), runtime.Int(3)), runtime.Str("bcd")},
		{"substring overlong", runtime.OpSubstring, vals(runtime.Str("abc"), runtime.Int(1), runtime.Int(30)), runtime.Str("bc")},
		{"substring max length", runtime.OpSubstring, vals(runtime.Str("abc"), runtime.Int(1), runtime.Int(math.MaxInt64)), runtime.Str("bc")},
		{"substring max offset", runtime.OpSubstring, vals(runtime.Str("abc"), runtime.Int(math.MaxInt64), runtime.Int(math.MaxInt64)), runtime.Str("")},
		{"substring past end", runtime.OpSubstring, vals(runtime.Str("abc"), runtime.Int(5)), runtime.Str("")},
		{"toupper", runtime.OpToUpper, vals(runtime.Str("abc")), runtime.Str("ABC")},
		{"tolower", runtime.OpToLower, vals(runtime.Str("ABC")), runtime.Str("abc")},
		{"tointeger", runtime.OpToInteger, vals(runtime.Str(" 42 ")), runtime.Int(42)},
		{"tointeger hex", runtime.OpToInteger, vals(runtime.Str("0x10")), runtime.Int(16)},
		{"tointeger invalid", runtime.OpToInteger, vals(runtime.Str("x")), runtime.Void},
		{"tofloat", runtime.OpToFloat, vals(runtime.Str("1.5")), runtime.Float(1.5)},
		{"topath", runtime.OpToPath, vals(runtime.Str(".a.b")), runtime.Path("a", "b")},
		{"contains", runtime.OpContains, vals(runtime.Str("abc"), runtime.Str("bc")), runtime.Bool(true)},
		{"minus unsupported", runtime.OpMinus, vals(runtime.Str("abc"), runtime.Str("c")), nil},
	})

	interp, _ := newTestInterpreter(t)
	assertErrorValue(t, interp.Dispatch(runtime.OpSubstring, vals(runtime.Str("abc"), runtime.Int(-1))), "negative offset")
}

func TestPathOps(t *testing.T) {
	runOpCases(t, []opCase{
		{"plus path", runtime.OpPlus, vals(runtime.Path("a"), runtime.Path("b", "c")), runtime.Path("a", "b", "c")},
		{"plus string", runtime.OpPlus, vals(runtime.Path("a"), runtime.Str("b")), runtime.Path("a", "b")},
		{"size", runtime.OpSize, vals(runtime.Path("a", "b")), runtime.Int(2)},
		{"select", runtime.OpSelect, vals(runtime.Path("a", "b"), runtime.Int(1)), runtime.Str("b")},
		{"select default", runtime.OpSelect, vals(runtime.Path("a"), runtime.Int(3), runtime.Str("d")), runtime.Str("d")},
		{"plus integer", runtime.OpPlus, vals(runtime.Path("a"), runtime.Int(1)), nil},
	})
}

func TestListOps(t *testing.T) {
	l := runtime.List(runtime.Int(3), runtime.Int(1), runtime.Int(2))
	runOpCases(t, []opCase{
		{"size", runtime.OpSize, vals(l), runtime.Int(3)},
		{"add", runtime.OpAdd, vals(l, runtime.Int(9)), runtime.List(runtime.Int(3), runtime.Int(1), runtime.Int(2), runtime.Int(9))},
		{"plus list", runtime.OpPlus, vals(runtime.List(runtime.Int(1)), runtime.List(runtime.Int(2))), runtime.List(runtime.Int(1), runtime.Int(2))},
		{"plus value", runtime.OpPlus, vals(runtime.List(runtime.Int(1)), runtime.Str("x")), runtime.List(runtime.Int(1), runtime.Str("x"))},
		{"select", runtime.OpSelect, vals(l, runtime.Int(0)), runtime.Int(3)},
		{"select default", runtime.OpSelect, vals(l, runtime.Int(9), runtime.Str("d")), runtime.Str("d")},
		{"select missing", runtime.OpSelect, vals(l, runtime.Int(-1)), runtime.Void},
		{"contains", runtime.OpContains, vals(l, runtime.Int(2)), runtime.Bool(true)},
		{"contains is kind strict", runtime.OpContains, vals(l, runtime.Float(2)), runtime.Bool(false)},
		{"remove", runtime.OpRemove, vals(l, runtime.Int(1)), runtime.List(runtime.Int(3), runtime.Int(2))},
		{"remove out of range", runtime.OpRemove, vals(l, runtime.Int(7)), l},
		{"flatten", runtime.OpFlatten, vals(runtime.List(runtime.List(runtime.Int(1)), runtime.List(), runtime.List(runtime.Int(2)))), runtime.List(runtime.Int(1), runtime.Int(2))},
		{"toset", runtime.OpToSet, vals(runtime.List(runtime.Int(2), runtime.Str("a"), runtime.Int(2), runtime.Int(1))), runtime.List(runtime.Int(1), runtime.Int(2), runtime.Str("a"))},
		{"merge", runtime.OpMerge, vals(runtime.List(runtime.Int(1), runtime.Int(2)), runtime.List(runtime.Int(2), runtime.Int(3))), runtime.List(runtime.Int(1), runtime.Int(2), runtime.Int(3))},
		{"lookup is not a list op", runtime.OpLookup, vals(l, runtime.Int(0)), nil},
	})

	interp, _ := newTestInterpreter(t)
	assertErrorValue(t, interp.Dispatch(runtime.OpFlatten, vals(runtime.List(runtime.Int(1)))), "not a list")
	assert.True(t, runtime.Equal(runtime.List(runtime.Int(3), runtime.Int(1), runtime.Int(2)), l))
}

func TestListIteration(t *testing.T) {
	interp, _ := newTestInterpreter(t)
	l := runtime.List(runtime.Int(1), runtime.Int(2), runtime.Int(3))
	double := runtime.Apply(runtime.OpMult, runtime.Term("x"), runtime.Int(2))
	odd := runtime.Apply(runtime.OpEQ, runtime.Apply(runtime.OpMod, runtime.Term("x"), runtime.Int(2)), runtime.Int(1))

	got := interp.Dispatch(runtime.OpForeach, vals(runtime.Term("x"), l, double))
	assert.True(t, runtime.Equal(runtime.Int(6), got))

	got = interp.Dispatch(runtime.OpForeach, vals(runtime.Term("x"), runtime.List(), double))
	assert.True(t, runtime.Equal(runtime.Void, got))

	got = interp.Dispatch(runtime.OpMaplist, vals(l, runtime.Str("x"), double))
	assert.True(t, runtime.Equal(runtime.List(runtime.Int(2), runtime.Int(4), runtime.Int(6)), got))

	got = interp.Dispatch(runtime.OpFilter, vals(l, runtime.Term("x"), odd))
	assert.True(t, runtime.Equal(runtime.List(runtime.Int(1), runtime.Int(3)), got))

	assertErrorValue(t, interp.Dispatch(runtime.OpFilter, vals(l, runtime.Term("x"), runtime.Int(1))), "not a boolean")

	_, bound := interp.env.Get("x")
	assert.False(t, bound)
}

func TestMapOps(t *testing.T) {
	m := sampleMap()
	runOpCases(t, []opCase{
		{"size", runtime.OpSize, vals(m), runtime.Int(2)},
		{"lookup", runtime.OpLookup, vals(m, runtime.Str("a")), runtime.Int(1)},
		{"lookup default", runtime.OpLookup, vals(m, runtime.Str("z"), runtime.Int(0)), runtime.Int(0)},
		{"lookup missing", runtime.OpLookup, vals(m, runtime.Str("z")), runtime.Void},
		{"haskey", runtime.OpHasKey, vals(m, runtime.Str("b")), runtime.Bool(true)},
		{"haskey missing", runtime.OpHasKey, vals(m, runtime.Int(1)), runtime.Bool(false)},
		{"add", runtime.OpAdd, vals(m, runtime.Str("c"), runtime.Int(3)), m.With(runtime.Str("c"), runtime.Int(3))},
		{"remove", runtime.OpRemove, vals(m, runtime.Str("a")), runtime.NewMap(runtime.MapEntry{Key: runtime.Str("b"), Value: runtime.Int(2)})},
		{"merge right wins", runtime.OpPlus, vals(m, runtime.NewMap(runtime.MapEntry{Key: runtime.Str("a"), Value: runtime.Int(9)})),
			runtime.NewMap(runtime.MapEntry{Key: runtime.Str("a"), Value: runtime.Int(9)}, runtime.MapEntry{Key: runtime.Str("b"), Value: runtime.Int(2)})},
		{"union", runtime.OpMerge, vals(m, runtime.NewMap()), m},
		{"void lookup", runtime.OpLookup, vals(runtime.Void, runtime.Str("a"), runtime.Int(5)), runtime.Int(5)},
		{"select unsupported", runtime.OpSelect, vals(m, runtime.Int(0)), nil},
	})
	assert.Equal(t, 2, m.Len())
}

func TestMapIteration(t *testing.T) {
	interp, _ := newTestInterpreter(t)
	m := runtime.NewMap(
		runtime.MapEntry{Key: runtime.Str("b"), Value: runtime.Int(2)},
		runtime.MapEntry{Key: runtime.Str("a"), Value: runtime.Int(1)},
		runtime.MapEntry{Key: runtime.Str("c"), Value: runtime.Int(3)},
	)
	pair := runtime.List(runtime.Term("k"), runtime.Term("v"))

	got := interp.Dispatch(runtime.OpForeach, vals(runtime.Term("k"), runtime.Term("v"), m, pair))
	assert.True(t, runtime.Equal(runtime.List(runtime.Str("c"), runtime.Int(3)), got))

	got = interp.Dispatch(runtime.OpMaplist, vals(m, runtime.Term("k"), runtime.Term("v"), runtime.Term("k")))
	assert.True(t, runtime.Equal(runtime.List(runtime.Str("a"), runtime.Str("b"), runtime.Str("c")), got))

	big := runtime.Apply(runtime.OpGT, runtime.Term("v"), runtime.Int(1))
	got = interp.Dispatch(runtime.OpFilter, vals(m, runtime.Term("k"), runtime.Term("v"), big))
	want := runtime.NewMap(
		runtime.MapEntry{Key: runtime.Str("b"), Value: runtime.Int(2)},
		runtime.MapEntry{Key: runtime.Str("c"), Value: runtime.Int(3)},
	)
	assert.True(t, runtime.Equal(want, got))
}

func TestTermOps(t *testing.T) {
	term := runtime.Term("HBox", runtime.Str("a"), runtime.Int(1))
	runOpCases(t, []opCase{
		{"size", runtime.OpSize, vals(term), runtime.Int(2)},
		{"symbol", runtime.OpSymbol, vals(term), runtime.Str("HBox")},
		{"args", runtime.OpArgs, vals(term), runtime.List(runtime.Str("a"), runtime.Int(1))},
		{"select", runtime.OpSelect, vals(term, runtime.Int(1)), runtime.Int(1)},
		{"select default", runtime.OpSelect, vals(term, runtime.Int(5), runtime.Bool(false)), runtime.Bool(false)},
		{"add", runtime.OpAdd, vals(term, runtime.Void), runtime.Term("HBox", runtime.Str("a"), runtime.Int(1), runtime.Void)},
		{"plus unsupported", runtime.OpPlus, vals(term, runtime.Int(1)), nil},
	})
}

func TestBuiltinOps(t *testing.T) {
	plus := runtime.Ref(runtime.OpPlus)
	inc := runtime.Ref(runtime.OpPlus, runtime.Int(1))
	runOpCases(t, []opCase{
		{"call", runtime.OpCall, vals(plus, runtime.Int(2), runtime.Int(3)), runtime.Int(5)},
		{"call bound", runtime.OpCall, vals(inc, runtime.Int(41)), runtime.Int(42)},
		{"add binds", runtime.OpAdd, vals(plus, runtime.Int(1)), inc},
		{"size", runtime.OpSize, vals(inc), runtime.Int(1)},
		{"call without arguments", runtime.OpCall, vals(plus), nil},
		{"call of call", runtime.OpCall, vals(runtime.Ref(runtime.OpCall), plus), nil},
		{"call not applicable", runtime.OpCall, vals(runtime.Ref(runtime.OpMinus), runtime.Str("a"), runtime.Str("b")), nil},
	})
}

func TestSortValues(t *testing.T) {
	runOpCases(t, []opCase{
		{"list", runtime.OpSort, vals(runtime.List(runtime.Str("b"), runtime.Int(2), runtime.Int(1), runtime.Str("a"))),
			runtime.List(runtime.Int(1), runtime.Int(2), runtime.Str("a"), runtime.Str("b"))},
		{"map keys", runtime.OpSort, vals(sampleMap()), runtime.List(runtime.Str("a"), runtime.Str("b"))},
		{"scalar", runtime.OpSort, vals(runtime.Int(1)), nil},
		{"two arguments", runtime.OpSort, vals(runtime.List(), runtime.List()), nil},
	})

	interp, _ := newTestInterpreter(t)
	// Sorting pairs by their first element only must keep the input order of ties.
	input := runtime.List(
		runtime.List(runtime.Int(2), runtime.Str("x")),
		runtime.List(runtime.Int(1), runtime.Str("y")),
		runtime.List(runtime.Int(2), runtime.Str("a")),
		runtime.List(runtime.Int(1), runtime.Str("b")),
	)
	first := func(name string) runtime.Value {
		return runtime.Apply(runtime.OpSelect, runtime.Term(name), runtime.Int(0))
	}
	byFirst := runtime.Apply(runtime.OpLT, first("x"), first("y"))
	got := interp.Dispatch(runtime.OpSort, vals(runtime.Term("x"), runtime.Term("y"), input, byFirst))
	want := runtime.List(
		runtime.List(runtime.Int(1), runtime.Str("y")),
		runtime.List(runtime.Int(1), runtime.Str("b")),
		runtime.List(runtime.Int(2), runtime.Str("x")),
		runtime.List(runtime.Int(2), runtime.Str("a")),
	)
	assert.True(t, runtime.Equal(want, got), runtime.Format(got))

	descending := runtime.Apply(runtime.OpGT, runtime.Term("x"), runtime.Term("y"))
	got = interp.Dispatch(runtime.OpSort, vals(runtime.Str("x"), runtime.Str("y"), runtime.List(runtime.Int(1), runtime.Int(3), runtime.Int(2)), descending))
	assert.True(t, runtime.Equal(runtime.List(runtime.Int(3), runtime.Int(2), runtime.Int(1)), got))

	bad := interp.Dispatch(runtime.OpSort, vals(runtime.Term("x"), runtime.Term("y"), runtime.List(runtime.Int(1), runtime.Int(2)), runtime.Int(0)))
	assertErrorValue(t, bad, "not a boolean")
}
