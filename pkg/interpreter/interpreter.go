package interpreter

import (
	"fmt"
	"log/slog"
	"strings"

	"ycp/interpreter-go/pkg/builtins"
	"ycp/interpreter-go/pkg/locale"
	"ycp/interpreter-go/pkg/runtime"
)

// Function is a user-defined function. Body is evaluated with Params bound
// to the call arguments in a scope nested under the globals.
type Function struct {
	Name   string
	Params []string
	Body   runtime.Value
}

// Interpreter evaluates value trees. An instance is not safe for concurrent
// use; the builtin table it refers to may be shared.
type Interpreter struct {
	logger     *slog.Logger
	symbols    *builtins.Table
	evaluator  builtins.Evaluator
	translator *locale.Translator
	ops        operators

	globals   *runtime.Environment
	env       *runtime.Environment
	functions map[string]*Function
	modules   map[string]map[string]*Function

	depth    int
	maxDepth int
}

// New creates an interpreter configured by opts.
func New(opts ...Option) (*Interpreter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("interpreter: %w", err)
		}
	}
	symbols := cfg.symbols
	if symbols == nil {
		table, err := builtins.Default()
		if err != nil {
			return nil, fmt.Errorf("interpreter: %w", err)
		}
		symbols = table
	}
	globals := runtime.NewEnvironment(nil)
	i := &Interpreter{
		logger:     setupLogger(cfg.handler, "ycp"),
		symbols:    symbols,
		evaluator:  cfg.evaluator,
		translator: locale.NewTranslator(cfg.catalog, cfg.language),
		ops:        defaultOperators(),
		globals:    globals,
		env:        globals,
		functions:  make(map[string]*Function),
		modules:    make(map[string]map[string]*Function),
		maxDepth:   cfg.maxDepth,
	}
	if i.evaluator == nil {
		i.evaluator = i
	}
	return i, nil
}

// Logger returns the interpreter's logger.
func (i *Interpreter) Logger() *slog.Logger { return i.logger }

// Translator returns the translator bound to the configured language.
func (i *Interpreter) Translator() *locale.Translator { return i.translator }

// Symbols returns the builtin table.
func (i *Interpreter) Symbols() *builtins.Table { return i.symbols }

// Bind defines a global variable.
func (i *Interpreter) Bind(name string, v runtime.Value) {
	i.globals.Define(name, v)
}

// Define registers a global function. A name of the form "Mod::fn" registers
// fn in module Mod.
func (i *Interpreter) Define(fn Function) error {
	if module, name, ok := strings.Cut(fn.Name, "::"); ok {
		fn.Name = name
		return i.DefineModule(module, fn)
	}
	if err := checkFunction(fn); err != nil {
		return err
	}
	i.functions[fn.Name] = &fn
	return nil
}

// DefineModule registers functions reachable as "module::name".
func (i *Interpreter) DefineModule(module string, fns ...Function) error {
	if module == "" {
		for _, fn := range fns {
			if err := i.Define(fn); err != nil {
				return err
			}
		}
		return nil
	}
	scope := i.modules[module]
	if scope == nil {
		scope = make(map[string]*Function)
		i.modules[module] = scope
	}
	for _, fn := range fns {
		if err := checkFunction(fn); err != nil {
			return fmt.Errorf("%s::%w", module, err)
		}
		scope[fn.Name] = &fn
	}
	return nil
}

func checkFunction(fn Function) error {
	if fn.Name == "" || strings.Contains(fn.Name, "::") {
		return fmt.Errorf("invalid function name %q", fn.Name)
	}
	seen := make(map[string]bool, len(fn.Params))
	for _, p := range fn.Params {
		if p == "" || seen[p] {
			return fmt.Errorf("%s: invalid or duplicate parameter %q", fn.Name, p)
		}
		seen[p] = true
	}
	return nil
}

func (i *Interpreter) lookupFunction(name string) (*Function, bool) {
	if fn, ok := i.functions[name]; ok {
		return fn, true
	}
	module, local, ok := strings.Cut(name, "::")
	if !ok {
		return nil, false
	}
	if module == "" {
		fn, ok := i.functions[local]
		return fn, ok
	}
	fn, ok := i.modules[module][local]
	return fn, ok
}

// Evaluate reduces v. Operator applications and terms are evaluated, lists
// and maps have their elements evaluated, and every other value evaluates to
// itself.
func (i *Interpreter) Evaluate(v runtime.Value) runtime.Value {
	if v == nil {
		return runtime.Null
	}
	if i.depth >= i.maxDepth {
		return runtime.Errorf("evaluation depth limit %d exceeded", i.maxDepth)
	}
	i.depth++
	defer func() { i.depth-- }()

	switch n := v.(type) {
	case runtime.ListValue:
		out := make([]runtime.Value, len(n.Elements))
		for idx, elem := range n.Elements {
			out[idx] = i.Evaluate(elem)
		}
		return runtime.ListValue{Elements: out}
	case runtime.MapValue:
		entries := n.Entries()
		for idx, e := range entries {
			entries[idx] = runtime.MapEntry{Key: i.Evaluate(e.Key), Value: i.Evaluate(e.Value)}
		}
		return runtime.NewMap(entries...)
	case runtime.BuiltinValue:
		if !n.Apply {
			return n
		}
		return i.apply(n.Code, n.Args)
	case runtime.TermValue:
		return i.evaluateTerm(n)
	case runtime.ErrorValue:
		return i.recoverError(n)
	case runtime.LocaleValue:
		return runtime.Str(i.translator.TranslatePlural(n.Singular, n.Plural, n.Count))
	default:
		return v
	}
}

// evaluateTerm looks the name up as a variable, a builtin, a user function
// and a module function, in that order. A term nothing claims stays a term
// with evaluated arguments.
func (i *Interpreter) evaluateTerm(t runtime.TermValue) runtime.Value {
	if len(t.Args) == 0 {
		if v, ok := i.env.Get(t.Name); ok {
			return v
		}
	}
	if v := i.ResolveTerm(t); !runtime.IsNull(v) {
		return v
	}
	args := make([]runtime.Value, len(t.Args))
	for idx, arg := range t.Args {
		args[idx] = i.Evaluate(arg)
	}
	return i.callFunction(runtime.TermValue{Name: t.Name, Args: args})
}

// callFunction invokes the user function named by t, whose arguments are
// already evaluated. Without such a function t is returned as is.
func (i *Interpreter) callFunction(t runtime.TermValue) runtime.Value {
	fn, ok := i.lookupFunction(t.Name)
	if !ok {
		return t
	}
	if len(t.Args) != len(fn.Params) {
		return runtime.Errorf("%s: expects %d arguments, got %d", t.Name, len(fn.Params), len(t.Args))
	}
	prev := i.env
	i.env = i.globals.Extend()
	defer func() { i.env = prev }()
	for idx, p := range fn.Params {
		i.env.Define(p, t.Args[idx])
	}
	return i.Evaluate(fn.Body)
}

// apply evaluates an operator application. AND and OR short-circuit; the
// iteration operators receive their variable names and bodies unevaluated.
func (i *Interpreter) apply(code runtime.Opcode, raw []runtime.Value) runtime.Value {
	if code == runtime.OpAnd || code == runtime.OpOr {
		return i.logical(code, raw)
	}
	args := make([]runtime.Value, len(raw))
	for idx, arg := range raw {
		if !eagerArg(code, len(raw), idx) {
			args[idx] = arg
			continue
		}
		v := i.Evaluate(arg)
		if runtime.IsError(v) && code != runtime.OpEQ && code != runtime.OpNEQ {
			return v
		}
		args[idx] = v
	}
	result := i.Dispatch(code, args)
	if !runtime.IsNull(result) {
		return result
	}
	if code == runtime.OpForeach {
		return runtime.Void
	}
	return runtime.Errorf("%s: no match for arguments (%s)", code, runtime.KindNames(args))
}

func eagerArg(code runtime.Opcode, n, idx int) bool {
	switch code {
	case runtime.OpForeach:
		return idx == n-2
	case runtime.OpFilter, runtime.OpMaplist:
		return idx == 0
	case runtime.OpSort:
		return n != 4 || idx == 2
	}
	return true
}

func (i *Interpreter) logical(code runtime.Opcode, raw []runtime.Value) runtime.Value {
	if len(raw) != 2 {
		return runtime.Errorf("%s: expects 2 arguments, got %d", code, len(raw))
	}
	for _, arg := range raw {
		v := i.Evaluate(arg)
		b, ok := v.(runtime.BoolValue)
		if !ok {
			if runtime.IsError(v) {
				return v
			}
			return runtime.Errorf("%s: boolean operand expected, got %s", code, v.Kind())
		}
		if code == runtime.OpAnd && !b.Val {
			return b
		}
		if code == runtime.OpOr && b.Val {
			return b
		}
	}
	return runtime.Bool(code == runtime.OpAnd)
}

type binding struct {
	name  string
	value runtime.Value
}

// bindingName accepts a bare symbol term or a string as a variable name.
func bindingName(v runtime.Value) (string, bool) {
	switch n := v.(type) {
	case runtime.TermValue:
		return n.Name, len(n.Args) == 0 && n.Name != ""
	case runtime.StringValue:
		return n.Val, n.Val != ""
	}
	return "", false
}

// evaluateWith evaluates body in a new scope holding bindings.
func (i *Interpreter) evaluateWith(body runtime.Value, bindings ...binding) runtime.Value {
	prev := i.env
	i.env = prev.Extend()
	defer func() { i.env = prev }()
	for _, b := range bindings {
		i.env.Define(b.name, b.value)
	}
	return i.Evaluate(body)
}

// predicate evaluates body as a condition. A non-boolean result is reported
// as an error.
func (i *Interpreter) predicate(code runtime.Opcode, body runtime.Value, bindings ...binding) (bool, runtime.Value) {
	v := i.evaluateWith(body, bindings...)
	switch b := v.(type) {
	case runtime.BoolValue:
		return b.Val, nil
	case runtime.ErrorValue:
		return false, b
	}
	return false, runtime.Errorf("%s: condition yields %s, not a boolean", code, v.Kind())
}
