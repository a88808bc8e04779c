package driver

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"ycp/interpreter-go/pkg/interpreter"
	"ycp/interpreter-go/pkg/locale"
	"ycp/interpreter-go/pkg/runtime"
)

// Program is a decoded program document: an optional text domain, function
// definitions and the main expression.
type Program struct {
	Path      string
	Domain    string
	Functions []interpreter.Function
	Main      runtime.Value
}

type programDisk struct {
	Domain    string         `yaml:"domain"`
	Functions []functionDisk `yaml:"functions"`
	Main      yaml.Node      `yaml:"main"`
}

type functionDisk struct {
	Name   string    `yaml:"name"`
	Params []string  `yaml:"params"`
	Body   yaml.Node `yaml:"body"`
}

// LoadProgram reads and decodes a program file.
func LoadProgram(path string) (*Program, error) {
	if path == "" {
		return nil, fmt.Errorf("driver: empty program path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("driver: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("driver: read %s: %w", abs, err)
	}
	prog, err := ParseProgram(data)
	if err != nil {
		return nil, fmt.Errorf("%w (in %s)", err, abs)
	}
	prog.Path = abs
	return prog, nil
}

// ParseProgram decodes a program document.
func ParseProgram(data []byte) (*Program, error) {
	var raw programDisk
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("driver: parse program: %w", err)
	}
	main, err := DecodeValue(&raw.Main)
	if err != nil {
		return nil, fmt.Errorf("driver: main: %w", err)
	}
	prog := &Program{
		Domain:    strings.TrimSpace(raw.Domain),
		Functions: make([]interpreter.Function, 0, len(raw.Functions)),
		Main:      main,
	}
	for _, fn := range raw.Functions {
		name := strings.TrimSpace(fn.Name)
		if name == "" {
			return nil, fmt.Errorf("driver: line %d: function without name", fn.Body.Line)
		}
		body, err := DecodeValue(&fn.Body)
		if err != nil {
			return nil, fmt.Errorf("driver: function %s: %w", name, err)
		}
		prog.Functions = append(prog.Functions, interpreter.Function{
			Name:   name,
			Params: fn.Params,
			Body:   body,
		})
	}
	return prog, nil
}

// Install defines the program's functions in interp and selects its text
// domain.
func (p *Program) Install(interp *interpreter.Interpreter) error {
	for _, fn := range p.Functions {
		if err := interp.Define(fn); err != nil {
			return fmt.Errorf("driver: %w", err)
		}
	}
	if p.Domain != "" {
		interp.Translator().SetDomain(p.Domain)
	}
	return nil
}

// Run installs the program and evaluates its main expression.
func (p *Program) Run(interp *interpreter.Interpreter) (runtime.Value, error) {
	if err := p.Install(interp); err != nil {
		return nil, err
	}
	return interp.Evaluate(p.Main), nil
}

// LoadCatalogs parses every .yaml or .yml file in dir into one catalog.
func LoadCatalogs(dir string) (*locale.Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("driver: catalogs: %w", err)
	}
	cat := locale.NewCatalog()
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("driver: catalogs: %w", err)
		}
		if err := cat.Parse(data); err != nil {
			return nil, fmt.Errorf("driver: %s: %w", path, err)
		}
	}
	return cat, nil
}
