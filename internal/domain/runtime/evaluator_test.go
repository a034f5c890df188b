package runtime

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brack.dev/pkg/brack/internal/domain/lexer"
	"brack.dev/pkg/brack/internal/domain/parser"
	m "brack.dev/pkg/brack/internal/model"
)

func compile(t *testing.T, source string) *m.SyntaxTree {
	t.Helper()

	tokens, diags, err := lexer.Lex(strings.NewReader(source), "test.brk")
	require.NoError(t, err)
	require.Empty(t, diags)

	tree, diags := parser.Parse(tokens, "test.brk")
	require.False(t, diags.HasErrors(), "parse errors: %v", diags.Messages())

	return tree
}

func run(t *testing.T, source string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	err := New(&out).Eval(context.Background(), compile(t, source))

	return out.String(), err
}

func TestEval_Output(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "println sum", source: "[println [+ 1 2]]", want: "3\n"},
		{name: "float", source: "[print 1.5]", want: "1.500000"},
		{name: "scalars", source: `[print 'a' true "s" false]`, want: "atruesfalse"},
		{name: "nothing", source: "[print _]", want: "_"},
		{name: "builtin function", source: "[print print]", want: "[print]"},
		{name: "user function", source: "[set sq [def [a _] [* a a]]] [print sq]", want: "[sq a _]"},
		{name: "closure", source: "[set x 5] [set f [def [y] [+ x y]]] [println [f 2]]", want: "7\n"},
		{name: "called expression", source: "[println [[def [a] [* a a]] 4]]", want: "16\n"},
		{name: "calling nothing", source: "[println [[] 1]]", want: "_\n"},
		{name: "shadowing", source: "[set a 1] [set f [def [a] a]] [print [f 2] a]", want: "21"},
		{name: "setter value", source: "[print [set x 3] x]", want: "33"},
		{
			name:   "arithmetic",
			source: `[print [+ 1 2.5] " " [- 5] " " [* 2 3 4] " " [/ 7 2] " " [+ "a" 1] " " [+]]`,
			want:   "3.500000 -5 24 3 a1 0",
		},
		{
			name:   "comparisons",
			source: `[print [< 1 2] [> 1 2.5] [= "a" "a"] [= 1 'a'] [< 1 2 3] [< 'a' 'b'] [= _ _]]`,
			want:   "truefalsetruefalsetruetruetrue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   error
	}{
		{name: "unknown identifier", source: "[print y]", want: ErrUnknownIdentifier},
		{name: "not callable", source: "[set x 1] [[x] 2]", want: ErrNotCallable},
		{name: "arity", source: "[set f [def [a] a]] [f 1 2]", want: ErrArity},
		{name: "division by zero", source: "[/ 1 0]", want: ErrDivisionByZero},
		{name: "operand type", source: "[+ true 1]", want: ErrType},
		{name: "ordering strings and ints", source: `[< "a" 1]`, want: ErrType},
		{name: "comparison arity", source: "[= 1]", want: ErrArity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.source)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var rerr *RuntimeError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, "test.brk", rerr.Position.Filename)
			assert.Equal(t, m.LevelError, rerr.Diagnostic().Level)
		})
	}
}

func TestEval_UnknownIdentifierPosition(t *testing.T) {
	_, err := run(t, "[print\n  y]")

	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, m.NewPosition("test.brk", 2, 3), rerr.Position)
	assert.Equal(t, "test.brk:2:3: unknown identifier: y", rerr.Error())
}

func TestEval_StopsAtFirstError(t *testing.T) {
	out, err := run(t, "[print 1] [print y] [print 2]")
	assert.Error(t, err)
	assert.Equal(t, "1", out)
}

func TestEval_CallDepth(t *testing.T) {
	e := New(&bytes.Buffer{})
	e.SetMaxCallDepth(50)

	err := e.Eval(context.Background(), compile(t, "[set f [def [] [f]]] [f]"))
	assert.ErrorIs(t, err, ErrCallDepth)
}

func TestEval_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer

	err := New(&out).Eval(ctx, compile(t, "[print 1]"))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, out.String())
}

func TestEval_Unsupported(t *testing.T) {
	tree := &m.SyntaxTree{Nodes: []*m.SyntaxNode{m.NewNode(m.NodeError)}}

	err := New(&bytes.Buffer{}).Eval(context.Background(), tree)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestEval_GlobalsPersist(t *testing.T) {
	var out bytes.Buffer

	e := New(&out)
	require.NoError(t, e.Eval(context.Background(), compile(t, "[set x 40]")))
	require.NoError(t, e.Eval(context.Background(), compile(t, "[print [+ x 2]]")))
	assert.Equal(t, "42", out.String())

	v, ok := e.Globals().Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, Int(40), v)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestEval_WriteError(t *testing.T) {
	err := New(failingWriter{}).Eval(context.Background(), compile(t, "[print 1]"))
	assert.ErrorContains(t, err, "closed")
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "-3", Format(Int(-3)))
	assert.Equal(t, "0.250000", Format(Float(0.25)))
	assert.Equal(t, "x", Format(Char('x')))
	assert.Equal(t, "[f _ b]", Format(&Function{Name: "f", Params: []string{"", "b"}}))
}
