package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"brack.dev/pkg/brack/internal/domain/lexer"
	"brack.dev/pkg/brack/internal/domain/parser"
	"brack.dev/pkg/brack/internal/domain/runtime"
	m "brack.dev/pkg/brack/internal/model"
)

// Unit holds the artifacts of one compilation unit. Tree is nil when only
// lexing was requested.
type Unit struct {
	Path        m.Path
	Spans       []m.SourceSpan
	Tokens      []m.Token
	Tree        *m.SyntaxTree
	Diagnostics m.Diagnostics
}

// Comments returns the number of comment spans, which never become tokens.
func (u Unit) Comments() int {
	n := 0

	for _, span := range u.Spans {
		if strings.HasPrefix(span.Text, "//") || strings.HasPrefix(span.Text, "/*") {
			n++
		}
	}

	return n
}

// Compiler runs the lexer, parser and evaluator over a single unit.
type Compiler interface {
	Lex(ctx context.Context, path m.Path, src []byte) (Unit, error)
	Compile(ctx context.Context, path m.Path, src []byte) (Unit, error)
	Evaluate(ctx context.Context, unit Unit, out io.Writer) error
}

type compiler struct {
	options []lexer.Option
}

// NewCompiler creates a Compiler passing opts to every scanner it creates.
func NewCompiler(opts ...lexer.Option) Compiler {
	return &compiler{options: opts}
}

// Lex scans and classifies src. A fatal scanner condition is returned as an
// error with its diagnostic also recorded in the unit.
func (c *compiler) Lex(ctx context.Context, path m.Path, src []byte) (Unit, error) {
	unit := Unit{Path: path}

	if err := ctx.Err(); err != nil {
		return unit, err
	}

	spans, err := lexer.Scan(bytes.NewReader(src), string(path), c.options...)
	if err != nil {
		var fatal *lexer.FatalError
		if errors.As(err, &fatal) {
			unit.Diagnostics.Add(fatal.Diagnostic)
		}

		return unit, fmt.Errorf("lex %s: %w", path, err)
	}

	unit.Spans = spans
	unit.Tokens, unit.Diagnostics = lexer.Classify(spans)

	return unit, nil
}

// Compile lexes and parses src. Parser diagnostics follow the lexer's.
func (c *compiler) Compile(ctx context.Context, path m.Path, src []byte) (Unit, error) {
	unit, err := c.Lex(ctx, path, src)
	if err != nil {
		return unit, err
	}

	tree, diags := parser.Parse(unit.Tokens, string(path))
	unit.Tree = tree
	unit.Diagnostics = append(unit.Diagnostics, diags...)

	slog.Debug("compiled unit", "file", path, "tokens", len(unit.Tokens), "nodes", tree.Count(),
		"diagnostics", len(unit.Diagnostics))

	return unit, nil
}

// Evaluate runs the unit's tree in a fresh evaluator writing to out.
func (c *compiler) Evaluate(ctx context.Context, unit Unit, out io.Writer) error {
	if unit.Tree == nil {
		return fmt.Errorf("evaluate %s: unit was not parsed", unit.Path)
	}

	return runtime.New(out).Eval(ctx, unit.Tree)
}
