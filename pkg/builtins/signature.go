package builtins

import (
	"fmt"
	"slices"

	"ycp/interpreter-go/pkg/runtime"
)

// signature is the argument policy decoded from one registry entry.
type signature struct {
	name    string
	minArgs int
	maxArgs int
	eager   map[int][]int
	subject int
	// inspect passes error arguments to the implementation instead of
	// returning the first one.
	inspect bool
}

func (s signature) accepts(n int) bool {
	return n >= s.minArgs && (s.maxArgs < 0 || n <= s.maxArgs)
}

func (s signature) isEager(n, idx int) bool {
	positions, ok := s.eager[n]
	if !ok {
		return true
	}
	for _, p := range positions {
		if p < 0 {
			p += n
		}
		if p == idx {
			return true
		}
	}
	return false
}

// handler wraps impl with argument evaluation and failure reporting. impl
// sees the prepared arguments with the subject moved to the front. An eager
// argument that evaluates to an ErrorValue is returned as the result unless
// the signature inspects errors. When impl yields no result, or the arity
// does not fit, the handler returns an ErrorValue whose cause is the term
// with its prepared arguments. On an arity mismatch a builtin with lazy
// positions keeps all arguments unevaluated.
func (s signature) handler(impl Handler) Handler {
	return func(ctx Context, raw []runtime.Value) runtime.Value {
		n := len(raw)
		if !s.accepts(n) {
			args := raw
			if len(s.eager) == 0 {
				args = make([]runtime.Value, n)
				for i, arg := range raw {
					args[i] = ctx.Evaluate(arg)
				}
			}
			return runtime.ErrorValue{
				Message: fmt.Sprintf("%s: wrong number of arguments (%d)", s.name, n),
				Cause:   runtime.TermValue{Name: s.name, Args: slices.Clone(args)},
			}
		}
		args := make([]runtime.Value, n)
		for i, arg := range raw {
			if !s.isEager(n, i) {
				args[i] = arg
				continue
			}
			v := ctx.Evaluate(arg)
			if runtime.IsError(v) && !s.inspect {
				return v
			}
			args[i] = v
		}
		result := impl(ctx, s.reorder(args))
		if runtime.IsNull(result) {
			return runtime.ErrorValue{
				Message: fmt.Sprintf("%s: no match for arguments (%s)", s.name, runtime.KindNames(args)),
				Cause:   runtime.TermValue{Name: s.name, Args: args},
			}
		}
		return result
	}
}

func (s signature) reorder(args []runtime.Value) []runtime.Value {
	idx := s.subject
	if idx < 0 {
		idx += len(args)
	}
	if idx <= 0 || idx >= len(args) {
		return args
	}
	out := make([]runtime.Value, 0, len(args))
	out = append(out, args[idx])
	out = append(out, args[:idx]...)
	out = append(out, args[idx+1:]...)
	return out
}
