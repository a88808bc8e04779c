package interpreter

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/text/language"

	"ycp/interpreter-go/pkg/builtins"
	"ycp/interpreter-go/pkg/locale"
)

// DefaultMaxDepth bounds nested evaluation when WithMaxDepth is not given.
const DefaultMaxDepth = 512

// Config holds the settings applied by New.
type Config struct {
	handler   slog.Handler
	language  language.Tag
	catalog   *locale.Catalog
	evaluator builtins.Evaluator
	symbols   *builtins.Table
	maxDepth  int
}

// Option is a function that modifies Config
type Option func(*Config) error

func defaultConfig() *Config {
	return &Config{
		language: language.English,
		maxDepth: DefaultMaxDepth,
	}
}

// WithLogHandler sets the handler diagnostics and the y2* builtins log to.
func WithLogHandler(handler slog.Handler) Option {
	return func(c *Config) error {
		if handler != nil {
			c.handler = handler
		}
		return nil
	}
}

// WithLanguage selects the language translations are looked up in.
func WithLanguage(tag language.Tag) Option {
	return func(c *Config) error {
		c.language = tag
		return nil
	}
}

// WithCatalog supplies the translation catalog.
func WithCatalog(cat *locale.Catalog) Option {
	return func(c *Config) error {
		if cat == nil {
			return fmt.Errorf("catalog is nil")
		}
		c.catalog = cat
		return nil
	}
}

// WithEvaluator replaces the evaluator that receives errors produced by
// builtin handlers. The interpreter itself is used by default.
func WithEvaluator(eval builtins.Evaluator) Option {
	return func(c *Config) error {
		if eval == nil {
			return fmt.Errorf("evaluator is nil")
		}
		c.evaluator = eval
		return nil
	}
}

// WithSymbolTable replaces the builtin table.
func WithSymbolTable(table *builtins.Table) Option {
	return func(c *Config) error {
		if table == nil {
			return fmt.Errorf("symbol table is nil")
		}
		c.symbols = table
		return nil
	}
}

// WithMaxDepth bounds nested evaluation.
func WithMaxDepth(depth int) Option {
	return func(c *Config) error {
		if depth <= 0 {
			return fmt.Errorf("max depth must be positive, got %d", depth)
		}
		c.maxDepth = depth
		return nil
	}
}

// setupLogger returns a logger grouped under name. A nil handler falls back
// to text output on stderr.
func setupLogger(handler slog.Handler, name string) *slog.Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}
	return slog.New(handler.WithGroup(name))
}
