// Package builtins holds the symbol table that maps builtin term names to
// their handlers. The table is decoded once from the embedded registry and is
// read-only afterwards, so interpreters may share it across goroutines.
package builtins

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"ycp/interpreter-go/pkg/locale"
	"ycp/interpreter-go/pkg/runtime"
)

//go:embed registry.yaml
var registryYAML []byte

// Context is what handlers need from the interpreter running them.
type Context interface {
	Evaluate(v runtime.Value) runtime.Value
	Dispatch(code runtime.Opcode, args []runtime.Value) runtime.Value
	Logger() *slog.Logger
	Translator() *locale.Translator
}

// Evaluator is the general evaluator the resolver hands error results to.
type Evaluator interface {
	Evaluate(v runtime.Value) runtime.Value
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(runtime.Value) runtime.Value

func (f EvaluatorFunc) Evaluate(v runtime.Value) runtime.Value { return f(v) }

// Handler receives a term's unevaluated arguments.
type Handler func(ctx Context, args []runtime.Value) runtime.Value

// Entry describes one builtin term.
type Entry struct {
	Name    string
	Opcode  runtime.Opcode
	MinArgs int
	MaxArgs int
	Doc     string
	Handler Handler
}

// Table maps builtin names to entries.
type Table struct {
	entries map[string]*Entry
}

// NewTable builds a table from copies of entries. Names must be unique.
func NewTable(entries ...*Entry) (*Table, error) {
	t := &Table{entries: make(map[string]*Entry, len(entries))}
	for _, e := range entries {
		if e == nil || e.Name == "" {
			return nil, fmt.Errorf("builtins: entry without name")
		}
		if e.Handler == nil {
			return nil, fmt.Errorf("builtins: %s: no handler", e.Name)
		}
		if _, dup := t.entries[e.Name]; dup {
			return nil, fmt.Errorf("builtins: duplicate entry %s", e.Name)
		}
		entry := *e
		t.entries[e.Name] = &entry
	}
	return t, nil
}

var defaultTable = sync.OnceValues(func() (*Table, error) {
	return Load(registryYAML)
})

// Default returns the table decoded from the embedded registry.
func Default() (*Table, error) {
	return defaultTable()
}

// Lookup returns a copy of the entry registered under name.
func (t *Table) Lookup(name string) (Entry, bool) {
	e, ok := t.entries[name]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns copies of all entries sorted by name.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Resolve looks term up and runs its handler. A miss yields runtime.Null so
// the caller can try other resolution strategies. An ErrorValue produced by
// the handler is handed to eval for another pass and that result is returned
// instead.
func (t *Table) Resolve(ctx Context, eval Evaluator, term runtime.TermValue) runtime.Value {
	entry, ok := t.entries[term.Name]
	if !ok {
		return runtime.Null
	}
	v := entry.Handler(ctx, term.Args)
	if !runtime.IsNull(v) && v.Kind() == runtime.KindError {
		v = eval.Evaluate(v)
	}
	return v
}

//-----------------------------------------------------------------------------
// Registry decoding
//-----------------------------------------------------------------------------

type registryDisk struct {
	Builtins []registryEntry `yaml:"builtins"`
}

type registryEntry struct {
	Name    string        `yaml:"name"`
	Opcode  string        `yaml:"opcode"`
	Native  string        `yaml:"native"`
	Arity   []int         `yaml:"arity"`
	Eager   map[int][]int `yaml:"eager"`
	Subject int           `yaml:"subject"`
	Inspect bool          `yaml:"inspect"`
	Doc     string        `yaml:"doc"`
}

// Load decodes a registry document into a table.
func Load(data []byte) (*Table, error) {
	var raw registryDisk
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("builtins: parse registry: %w", err)
	}
	entries := make([]*Entry, 0, len(raw.Builtins))
	for _, re := range raw.Builtins {
		entry, err := re.toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return NewTable(entries...)
}

func (re registryEntry) toEntry() (*Entry, error) {
	name := strings.TrimSpace(re.Name)
	if name == "" {
		return nil, fmt.Errorf("builtins: registry entry without name")
	}
	if len(re.Arity) != 2 || re.Arity[0] < 0 || (re.Arity[1] >= 0 && re.Arity[1] < re.Arity[0]) {
		return nil, fmt.Errorf("builtins: %s: arity must be [min, max]", name)
	}
	sig := signature{
		name:    name,
		minArgs: re.Arity[0],
		maxArgs: re.Arity[1],
		eager:   re.Eager,
		subject: re.Subject,
		inspect: re.Inspect,
	}
	entry := &Entry{
		Name:    name,
		MinArgs: sig.minArgs,
		MaxArgs: sig.maxArgs,
		Doc:     re.Doc,
	}
	switch {
	case re.Opcode != "" && re.Native != "":
		return nil, fmt.Errorf("builtins: %s: opcode and native are exclusive", name)
	case re.Opcode != "":
		code, ok := runtime.OpcodeByName(re.Opcode)
		if !ok {
			return nil, fmt.Errorf("builtins: %s: unknown opcode %q", name, re.Opcode)
		}
		entry.Opcode = code
		entry.Handler = sig.handler(func(ctx Context, args []runtime.Value) runtime.Value {
			return ctx.Dispatch(code, args)
		})
	case re.Native != "":
		impl, ok := natives[re.Native]
		if !ok {
			return nil, fmt.Errorf("builtins: %s: unknown native %q", name, re.Native)
		}
		entry.Handler = sig.handler(impl)
	default:
		return nil, fmt.Errorf("builtins: %s: needs an opcode or a native", name)
	}
	return entry, nil
}
