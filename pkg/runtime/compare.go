package runtime

import (
	"bytes"
	"cmp"
	"slices"
	"strings"
)

// Ordering is the result of Compare.
type Ordering int

const (
	OrderLess    Ordering = -1
	OrderEqual   Ordering = 0
	OrderGreater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case OrderLess:
		return "less"
	case OrderEqual:
		return "equal"
	default:
		return "greater"
	}
}

func order(c int) Ordering {
	switch {
	case c < 0:
		return OrderLess
	case c > 0:
		return OrderGreater
	default:
		return OrderEqual
	}
}

// Equal reports structural equality. Values of different kinds are never
// equal, so 1 and 1.0 differ.
func Equal(a, b Value) bool {
	return Compare(a, b) == OrderEqual
}

// Compare orders any two values. Values of different kinds order by kind
// rank (see Kind); values of the same kind order by content. NaN sorts before
// every other float and equals itself.
func Compare(a, b Value) Ordering {
	a, b = normalize(a), normalize(b)
	if a.Kind() != b.Kind() {
		return order(cmp.Compare(a.Kind(), b.Kind()))
	}
	switch lv := a.(type) {
	case NullValue, VoidValue:
		return OrderEqual
	case BoolValue:
		rv := b.(BoolValue)
		return order(cmp.Compare(boolRank(lv.Val), boolRank(rv.Val)))
	case IntegerValue:
		return order(cmp.Compare(lv.Val, b.(IntegerValue).Val))
	case FloatValue:
		return order(cmp.Compare(lv.Val, b.(FloatValue).Val))
	case StringValue:
		return order(strings.Compare(lv.Val, b.(StringValue).Val))
	case PathValue:
		return order(slices.Compare(lv.Segments, b.(PathValue).Segments))
	case ByteblockValue:
		return order(bytes.Compare(lv.Data, b.(ByteblockValue).Data))
	case ListValue:
		return compareSeq(lv.Elements, b.(ListValue).Elements)
	case MapValue:
		return compareMaps(lv, b.(MapValue))
	case TermValue:
		rv := b.(TermValue)
		if c := strings.Compare(lv.Name, rv.Name); c != 0 {
			return order(c)
		}
		return compareSeq(lv.Args, rv.Args)
	case BuiltinValue:
		rv := b.(BuiltinValue)
		if c := cmp.Compare(lv.Code, rv.Code); c != 0 {
			return order(c)
		}
		if lv.Apply != rv.Apply {
			return order(cmp.Compare(boolRank(lv.Apply), boolRank(rv.Apply)))
		}
		return compareSeq(lv.Args, rv.Args)
	case LocaleValue:
		rv := b.(LocaleValue)
		if c := strings.Compare(lv.Singular, rv.Singular); c != 0 {
			return order(c)
		}
		if c := strings.Compare(lv.Plural, rv.Plural); c != 0 {
			return order(c)
		}
		return order(cmp.Compare(lv.Count, rv.Count))
	case ErrorValue:
		rv := b.(ErrorValue)
		if c := strings.Compare(lv.Message, rv.Message); c != 0 {
			return order(c)
		}
		return Compare(lv.Cause, rv.Cause)
	}
	// Kinds outside the closed set have no content order.
	return OrderEqual
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func compareSeq(left, right []Value) Ordering {
	for i := 0; i < len(left) && i < len(right); i++ {
		if c := Compare(left[i], right[i]); c != OrderEqual {
			return c
		}
	}
	return order(cmp.Compare(len(left), len(right)))
}

func compareMaps(left, right MapValue) Ordering {
	le, re := left.Entries(), right.Entries()
	for i := 0; i < len(le) && i < len(re); i++ {
		if c := Compare(le[i].Key, re[i].Key); c != OrderEqual {
			return c
		}
		if c := Compare(le[i].Value, re[i].Value); c != OrderEqual {
			return c
		}
	}
	return order(cmp.Compare(len(le), len(re)))
}
