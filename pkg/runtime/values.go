package runtime

import (
	"fmt"
	"slices"
	"strings"
)

// Kind identifies the runtime value category. The declaration order doubles
// as the rank used when ordering values of different kinds.
type Kind int

const (
	KindNull Kind = iota
	KindVoid
	KindBool
	KindInteger
	KindFloat
	KindString
	KindPath
	KindByteblock
	KindList
	KindMap
	KindTerm
	KindBuiltin
	KindLocale
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindVoid:
		return "void"
	case KindBool:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindPath:
		return "path"
	case KindByteblock:
		return "byteblock"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindTerm:
		return "term"
	case KindBuiltin:
		return "builtin"
	case KindLocale:
		return "locale"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Sentinels and scalars
//-----------------------------------------------------------------------------

// NullValue means "no result". It is never a language value.
type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

// Null is the shared sentinel.
var Null = NullValue{}

// IsNull reports whether v is the Null sentinel or a missing Go value.
func IsNull(v Value) bool {
	return v == nil || v.Kind() == KindNull
}

// VoidValue is the language's unit value (`nil` in source).
type VoidValue struct{}

func (VoidValue) Kind() Kind { return KindVoid }

var Void = VoidValue{}

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// PathValue is a dotted path such as `.target.root`.
type PathValue struct {
	Segments []string
}

func (v PathValue) Kind() Kind { return KindPath }

// ByteblockValue is an opaque binary blob.
type ByteblockValue struct {
	Data []byte
}

func (v ByteblockValue) Kind() Kind { return KindByteblock }

// Size returns the number of bytes in the block.
func (v ByteblockValue) Size() int { return len(v.Data) }

//-----------------------------------------------------------------------------
// Containers and code
//-----------------------------------------------------------------------------

type ListValue struct {
	Elements []Value
}

func (v ListValue) Kind() Kind { return KindList }

// Len returns the number of elements.
func (v ListValue) Len() int { return len(v.Elements) }

// TermValue is a symbolic function application `name(args...)`.
type TermValue struct {
	Name string
	Args []Value
}

func (v TermValue) Kind() Kind { return KindTerm }

// BuiltinValue references a builtin operator together with any bound
// arguments. When Apply is set the value is an operator application and the
// evaluator reduces it; otherwise it is an inert first-class reference.
type BuiltinValue struct {
	Code  Opcode
	Args  []Value
	Apply bool
}

func (v BuiltinValue) Kind() Kind { return KindBuiltin }

// LocaleValue is a translatable text with singular and plural forms.
type LocaleValue struct {
	Singular string
	Plural   string
	Count    int64
}

func (v LocaleValue) Kind() Kind { return KindLocale }

// ErrorValue is a recoverable failure carried as data. Cause, when set, is the
// term whose builtin resolution failed; its arguments are already evaluated.
type ErrorValue struct {
	Message string
	Cause   Value
}

func (v ErrorValue) Kind() Kind { return KindError }

func (v ErrorValue) Error() string { return v.Message }

//-----------------------------------------------------------------------------
// Constructors
//-----------------------------------------------------------------------------

func Bool(b bool) BoolValue { return BoolValue{Val: b} }

func Int(n int64) IntegerValue { return IntegerValue{Val: n} }

func Float(f float64) FloatValue { return FloatValue{Val: f} }

func Str(s string) StringValue { return StringValue{Val: s} }

// Path builds a path from its segments.
func Path(segments ...string) PathValue {
	return PathValue{Segments: slices.Clone(segments)}
}

// ParsePath splits a dotted literal such as ".a.b" into a path.
func ParsePath(literal string) PathValue {
	trimmed := strings.TrimPrefix(literal, ".")
	if trimmed == "" {
		return PathValue{}
	}
	return PathValue{Segments: strings.Split(trimmed, ".")}
}

func Bytes(data []byte) ByteblockValue {
	return ByteblockValue{Data: slices.Clone(data)}
}

func List(elements ...Value) ListValue {
	return ListValue{Elements: slices.Clone(elements)}
}

func Term(name string, args ...Value) TermValue {
	return TermValue{Name: name, Args: slices.Clone(args)}
}

// Apply builds an operator application.
func Apply(code Opcode, args ...Value) BuiltinValue {
	return BuiltinValue{Code: code, Args: slices.Clone(args), Apply: true}
}

// Ref builds a first-class builtin reference with optional bound arguments.
func Ref(code Opcode, args ...Value) BuiltinValue {
	return BuiltinValue{Code: code, Args: slices.Clone(args)}
}

func Locale(singular, plural string, count int64) LocaleValue {
	return LocaleValue{Singular: singular, Plural: plural, Count: count}
}

func Errorf(format string, args ...any) ErrorValue {
	return ErrorValue{Message: fmt.Sprintf(format, args...)}
}

// IsError reports whether v is an ErrorValue.
func IsError(v Value) bool {
	return v != nil && v.Kind() == KindError
}

// KindNames lists the kinds of values, comma separated.
func KindNames(values []Value) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = normalize(v).Kind().String()
	}
	return strings.Join(names, ", ")
}
