package builtins

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"ycp/interpreter-go/pkg/runtime"
)

// natives are the builtins implemented directly in Go. They receive
// arguments prepared according to their registry entry.
var natives = map[string]Handler{
	"tostring":    nativeToString,
	"sformat":     nativeSformat,
	"is":          nativeIs,
	"eval":        nativeEval,
	"translate":   nativeTranslate,
	"textdomain":  nativeTextdomain,
	"y2debug":     logNative(slog.LevelDebug, false),
	"y2milestone": logNative(slog.LevelInfo, false),
	"y2warning":   logNative(slog.LevelWarn, false),
	"y2error":     logNative(slog.LevelError, false),
	"y2internal":  logNative(slog.LevelError, true),
}

// maxPrecision is the number of decimals that renders any float64 exactly.
const maxPrecision = 1074

func nativeToString(_ Context, args []runtime.Value) runtime.Value {
	if len(args) == 2 {
		f, ok := args[0].(runtime.FloatValue)
		prec, ok2 := args[1].(runtime.IntegerValue)
		if !ok || !ok2 {
			return runtime.Null
		}
		if prec.Val < 0 || prec.Val > maxPrecision {
			return runtime.Errorf("tostring: precision %d out of range 0..%d", prec.Val, maxPrecision)
		}
		return runtime.Str(strconv.FormatFloat(f.Val, 'f', int(prec.Val), 64))
	}
	return runtime.Str(runtime.ToString(args[0]))
}

func nativeSformat(_ Context, args []runtime.Value) runtime.Value {
	format, ok := args[0].(runtime.StringValue)
	if !ok {
		return runtime.Null
	}
	return runtime.Str(Sformat(format.Val, args[1:]))
}

// Sformat substitutes %1 .. %9 with the string form of args; %% is a
// literal percent sign. Placeholders without an argument are dropped.
func Sformat(format string, args []runtime.Value) string {
	var sb strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			sb.WriteByte(c)
			continue
		}
		next := format[i+1]
		switch {
		case next == '%':
			sb.WriteByte('%')
			i++
		case next >= '1' && next <= '9':
			idx := int(next - '1')
			if idx < len(args) {
				sb.WriteString(runtime.ToString(args[idx]))
			}
			i++
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func nativeIs(_ Context, args []runtime.Value) runtime.Value {
	name, ok := args[1].(runtime.StringValue)
	if !ok {
		return runtime.Null
	}
	switch name.Val {
	case "any":
		return runtime.Bool(true)
	case "void":
		return runtime.Bool(args[0].Kind() == runtime.KindVoid)
	}
	return runtime.Bool(args[0].Kind().String() == name.Val)
}

func nativeEval(ctx Context, args []runtime.Value) runtime.Value {
	return ctx.Evaluate(args[0])
}

func nativeTranslate(ctx Context, args []runtime.Value) runtime.Value {
	switch len(args) {
	case 1:
		msgid, ok := args[0].(runtime.StringValue)
		if !ok {
			return runtime.Null
		}
		return runtime.Str(ctx.Translator().Translate(msgid.Val))
	case 3:
		loc := ctx.Dispatch(runtime.OpNLocale, args)
		if l, ok := loc.(runtime.LocaleValue); ok {
			return runtime.Str(ctx.Translator().TranslatePlural(l.Singular, l.Plural, l.Count))
		}
		return loc
	default:
		return runtime.Null
	}
}

func nativeTextdomain(ctx Context, args []runtime.Value) runtime.Value {
	domain, ok := args[0].(runtime.StringValue)
	if !ok {
		return runtime.Null
	}
	ctx.Translator().SetDomain(domain.Val)
	return runtime.Void
}

func logNative(level slog.Level, internal bool) Handler {
	return func(ctx Context, args []runtime.Value) runtime.Value {
		var msg string
		if format, ok := args[0].(runtime.StringValue); ok {
			msg = Sformat(format.Val, args[1:])
		} else {
			parts := make([]string, len(args))
			for i, a := range args {
				parts[i] = runtime.ToString(a)
			}
			msg = strings.Join(parts, " ")
		}
		attrs := []any{"source", "script"}
		if internal {
			attrs = append(attrs, "internal", true)
		}
		ctx.Logger().Log(context.Background(), level, msg, attrs...)
		return runtime.Void
	}
}
