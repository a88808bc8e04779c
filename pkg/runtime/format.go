package runtime

import (
	"encoding/hex"
	"math"
	"strconv"
	"strings"
)

// Format renders v in source literal syntax.
func Format(v Value) string {
	var sb strings.Builder
	writeValue(&sb, normalize(v))
	return sb.String()
}

// ToString renders v the way string concatenation and `tostring` see it:
// strings appear without quotes, everything else as a literal.
func ToString(v Value) string {
	if s, ok := v.(StringValue); ok {
		return s.Val
	}
	return Format(v)
}

// FormatFloat renders a float so that it always reads back as a float.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func writeValue(sb *strings.Builder, v Value) {
	switch val := v.(type) {
	case NullValue:
		sb.WriteString("<null>")
	case VoidValue:
		sb.WriteString("nil")
	case BoolValue:
		sb.WriteString(strconv.FormatBool(val.Val))
	case IntegerValue:
		sb.WriteString(strconv.FormatInt(val.Val, 10))
	case FloatValue:
		sb.WriteString(FormatFloat(val.Val))
	case StringValue:
		sb.WriteString(strconv.Quote(val.Val))
	case PathValue:
		writePath(sb, val)
	case ByteblockValue:
		sb.WriteString("#[")
		sb.WriteString(hex.EncodeToString(val.Data))
		sb.WriteString("]")
	case ListValue:
		sb.WriteString("[")
		writeSeq(sb, val.Elements)
		sb.WriteString("]")
	case MapValue:
		sb.WriteString("$[")
		for i, e := range val.Entries() {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeValue(sb, e.Key)
			sb.WriteString(":")
			writeValue(sb, e.Value)
		}
		sb.WriteString("]")
	case TermValue:
		sb.WriteString("`")
		sb.WriteString(val.Name)
		sb.WriteString("(")
		writeSeq(sb, val.Args)
		sb.WriteString(")")
	case BuiltinValue:
		if !val.Apply {
			sb.WriteString("&")
		}
		sb.WriteString(val.Code.String())
		sb.WriteString("(")
		writeSeq(sb, val.Args)
		sb.WriteString(")")
	case LocaleValue:
		sb.WriteString("_(")
		sb.WriteString(strconv.Quote(val.Singular))
		sb.WriteString(", ")
		sb.WriteString(strconv.Quote(val.Plural))
		sb.WriteString(", ")
		sb.WriteString(strconv.FormatInt(val.Count, 10))
		sb.WriteString(")")
	case ErrorValue:
		sb.WriteString("error(")
		sb.WriteString(strconv.Quote(val.Message))
		sb.WriteString(")")
	default:
		sb.WriteString("<")
		sb.WriteString(v.Kind().String())
		sb.WriteString(">")
	}
}

func writeSeq(sb *strings.Builder, values []Value) {
	for i, el := range values {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeValue(sb, normalize(el))
	}
}

func writePath(sb *strings.Builder, p PathValue) {
	if len(p.Segments) == 0 {
		sb.WriteString(".")
		return
	}
	for _, seg := range p.Segments {
		sb.WriteString(".")
		if plainSegment(seg) {
			sb.WriteString(seg)
		} else {
			sb.WriteString(strconv.Quote(seg))
		}
	}
}

func plainSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}
