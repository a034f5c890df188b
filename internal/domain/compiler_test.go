package domain

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brack.dev/pkg/brack/internal/domain/lexer"
	m "brack.dev/pkg/brack/internal/model"
)

func TestCompiler_Lex(t *testing.T) {
	unit, err := NewCompiler().Lex(context.Background(), "a.brk", []byte("// c\n[+ 1 2] /* b */"))
	require.NoError(t, err)

	assert.Equal(t, m.Path("a.brk"), unit.Path)
	assert.Equal(t, 2, unit.Comments())
	assert.Len(t, unit.Tokens, 5)
	assert.Nil(t, unit.Tree)
	assert.Empty(t, unit.Diagnostics)
}

func TestCompiler_Compile(t *testing.T) {
	src := "[print 99999999999999999999] [set 1 2]"

	unit, err := NewCompiler().Compile(context.Background(), "a.brk", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, unit.Tree)

	assert.Equal(t, "a.brk", unit.Tree.Filename)
	require.Len(t, unit.Tree.Nodes, 2)
	assert.Equal(t, m.NodeError, unit.Tree.Nodes[1].Kind)
	assert.Equal(t, []string{"number is too large", "expected variable identifier"}, unit.Diagnostics.Messages())
}

func TestCompiler_Fatal(t *testing.T) {
	c := NewCompiler(lexer.WithMaxLexemeLength(4))

	unit, err := c.Compile(context.Background(), "a.brk", []byte("[print abcdefgh]"))
	require.Error(t, err)

	var fatal *lexer.FatalError
	require.ErrorAs(t, err, &fatal)
	assert.ErrorIs(t, err, lexer.ErrLexemeTooLong)
	require.Len(t, unit.Diagnostics, 1)
	assert.Equal(t, m.LevelError, unit.Diagnostics[0].Level)
	assert.Nil(t, unit.Tree)
}

func TestCompiler_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCompiler().Compile(ctx, "a.brk", []byte("[f]"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompiler_Evaluate(t *testing.T) {
	c := NewCompiler()

	unit, err := c.Compile(context.Background(), "a.brk", []byte("[println [+ 1 2]]"))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, c.Evaluate(context.Background(), unit, &out))
	assert.Equal(t, "3\n", out.String())

	lexed, err := c.Lex(context.Background(), "a.brk", []byte("[f]"))
	require.NoError(t, err)
	assert.ErrorContains(t, c.Evaluate(context.Background(), lexed, &out), "not parsed")
}
