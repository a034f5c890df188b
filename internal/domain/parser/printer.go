package parser

import (
	"fmt"
	"io"
	"strings"

	m "brack.dev/pkg/brack/internal/model"
)

// PrintOption configures Fprint.
type PrintOption func(*printer)

type printer struct {
	marker func(string) string
	kind   func(string) string
}

// WithMarkerStyle renders the depth markers through style.
func WithMarkerStyle(style func(string) string) PrintOption {
	return func(p *printer) {
		p.marker = style
	}
}

// WithKindStyle renders the node kind names through style.
func WithKindStyle(style func(string) string) PrintOption {
	return func(p *printer) {
		p.kind = style
	}
}

func identity(s string) string { return s }

// Fprint writes the tree to w, one node per line. Each line starts with one
// '|' per level, e.g.
//
//	|FUNCTION_CALL
//	||IDENTIFIER(function(+))
//	||VALUE_INTEGER(integer(1))
func Fprint(w io.Writer, tree *m.SyntaxTree, opts ...PrintOption) error {
	p := printer{marker: identity, kind: identity}
	for _, opt := range opts {
		opt(&p)
	}

	var err error

	for _, root := range tree.Nodes {
		root.Walk(func(node *m.SyntaxNode, depth int) {
			if err != nil {
				return
			}

			_, err = fmt.Fprintln(w, p.line(node, depth))
		})

		if err != nil {
			return fmt.Errorf("print tree: %w", err)
		}
	}

	return nil
}

// Sprint returns the tree rendered by Fprint without styling.
func Sprint(tree *m.SyntaxTree) string {
	var sb strings.Builder

	_ = Fprint(&sb, tree)

	return sb.String()
}

func (p printer) line(node *m.SyntaxNode, depth int) string {
	line := p.marker(strings.Repeat("|", depth+1)) + p.kind(node.Kind.String())
	if node.Token != nil {
		line += "(" + node.Token.String() + ")"
	}

	return line
}
