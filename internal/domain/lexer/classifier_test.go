package lexer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "brack.dev/pkg/brack/internal/model"
)

func lex(t *testing.T, input string) ([]m.Token, m.Diagnostics) {
	t.Helper()

	tokens, diags, err := Lex(strings.NewReader(input), "test.brk")
	require.NoError(t, err)

	return tokens, diags
}

func kinds(t *testing.T, input string) []m.TokenKind {
	t.Helper()

	tokens, diags := lex(t, input)
	require.Empty(t, diags, "unexpected diagnostics for %q", input)

	return m.Kinds(tokens)
}

func pos(line, col int) m.FilePosition {
	return m.NewPosition("test.brk", line, col)
}

func TestLex_Call(t *testing.T) {
	tokens, diags := lex(t, "[+ 1 2]")

	want := []m.Token{
		m.NewToken(m.BracketOpen, pos(1, 1), m.Integer(0)),
		m.NewToken(m.IdentFunction, pos(1, 2), m.Text("+")),
		m.NewToken(m.LiteralInteger, pos(1, 4), m.Integer(1)),
		m.NewToken(m.LiteralInteger, pos(1, 6), m.Integer(2)),
		m.NewToken(m.BracketClose, pos(1, 7), m.Integer(0)),
	}

	assert.Empty(t, diags)

	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("Lex() mismatch (-want +got):\n%s", diff)
	}
}

func TestLex_Diagnostics(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kinds    []m.TokenKind
		messages []string
	}{
		{
			name:     "unterminated string",
			input:    `"unterminated`,
			messages: []string{"string literal is not closed"},
		},
		{
			name:     "close before open",
			input:    "][",
			kinds:    []m.TokenKind{m.BracketOpen},
			messages: []string{"missing [ before ]", "missing 1 or more closing brackets"},
		},
		{
			name:     "identifier outside brackets",
			input:    "foo",
			messages: []string{"cannot use identifiers directly"},
		},
		{
			name:     "keyword not in function position",
			input:    "[+ set 1]",
			kinds:    []m.TokenKind{m.BracketOpen, m.IdentFunction, m.LiteralInteger, m.BracketClose},
			messages: []string{"keyword must be used as function"},
		},
		{
			name:     "unclosed block comment",
			input:    "[+ 1] /* never closed",
			kinds:    []m.TokenKind{m.BracketOpen, m.IdentFunction, m.LiteralInteger, m.BracketClose},
			messages: []string{"block comment is not closed"},
		},
		{
			name:     "char literal with two characters",
			input:    "[print 'ab']",
			kinds:    []m.TokenKind{m.BracketOpen, m.IdentFunction, m.BracketClose},
			messages: []string{"char literal can only contain one character"},
		},
		{
			name:     "empty char literal",
			input:    "[print '']",
			kinds:    []m.TokenKind{m.BracketOpen, m.IdentFunction, m.BracketClose},
			messages: []string{"char literal can only contain one character"},
		},
		{
			name:     "unclosed char literal",
			input:    "[print 'a",
			kinds:    []m.TokenKind{m.BracketOpen, m.IdentFunction},
			messages: []string{"char literal is not closed", "missing 1 or more closing brackets"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, diags := lex(t, tt.input)
			assert.Equal(t, tt.kinds, nilIfEmpty(m.Kinds(tokens)))
			assert.Equal(t, tt.messages, diags.Messages())

			for _, d := range diags {
				assert.Equal(t, m.LevelError, d.Level)
			}
		})
	}
}

func nilIfEmpty(kinds []m.TokenKind) []m.TokenKind {
	if len(kinds) == 0 {
		return nil
	}

	return kinds
}

func TestLex_MissingCloseIsPositionedAtLastSpan(t *testing.T) {
	_, diags := lex(t, "[+ 1\n  2")
	require.Len(t, diags, 1)

	assert.Equal(t, "]", diags[0].Text)
	assert.Equal(t, pos(2, 3), diags[0].Position)
	assert.Equal(t, "try adding ]", diags[0].Help)
}

func TestLex_Literals(t *testing.T) {
	tokens, diags := lex(t, `[f "hi there" 'c' true false _ // comment
	/* block */ x]`)
	require.Empty(t, diags)

	want := []m.Token{
		m.NewToken(m.BracketOpen, pos(1, 1), m.Integer(0)),
		m.NewToken(m.IdentFunction, pos(1, 2), m.Text("f")),
		m.NewToken(m.LiteralString, pos(1, 4), m.Text("hi there")),
		m.NewToken(m.LiteralChar, pos(1, 15), m.Char('c')),
		m.NewToken(m.LiteralBool, pos(1, 19), m.Bool(true)),
		m.NewToken(m.LiteralBool, pos(1, 24), m.Bool(false)),
		m.NewToken(m.OperatorNothing, pos(1, 30), nil),
		m.NewToken(m.IdentVariable, pos(2, 14), m.Text("x")),
		m.NewToken(m.BracketClose, pos(2, 15), m.Integer(0)),
	}

	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("Lex() mismatch (-want +got):\n%s", diff)
	}
}

func TestLex_EscapedCharLiteral(t *testing.T) {
	tokens, diags := lex(t, `[print '\n']`)
	require.Empty(t, diags)
	require.Len(t, tokens, 4)

	c, ok := tokens[2].Char()
	assert.True(t, ok)
	assert.Equal(t, byte('\n'), c)
}

func TestLex_Keywords(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		assert.Equal(t,
			[]m.TokenKind{m.BracketOpen, m.KeywordSet, m.IdentVariable, m.LiteralInteger, m.BracketClose},
			kinds(t, "[set x 5]"))
	})

	t.Run("def parameters and body", func(t *testing.T) {
		assert.Equal(t, []m.TokenKind{
			m.BracketOpen, m.KeywordDef,
			m.BracketOpen, m.IdentParameter, m.IdentParameter, m.BracketClose,
			m.BracketOpen, m.IdentFunction, m.IdentVariable, m.IdentVariable, m.BracketClose,
			m.BracketClose,
		}, kinds(t, "[def [a b] [+ a b]]"))
	})

	t.Run("def with nothing parameter", func(t *testing.T) {
		assert.Equal(t, []m.TokenKind{
			m.BracketOpen, m.KeywordDef,
			m.BracketOpen, m.IdentParameter, m.OperatorNothing, m.BracketClose,
			m.IdentVariable, m.BracketClose,
		}, kinds(t, "[def [a _] a]"))
	})

	t.Run("sign reclassifies name and parameter types", func(t *testing.T) {
		assert.Equal(t, []m.TokenKind{
			m.BracketOpen, m.KeywordSign, m.IdentFunction,
			m.BracketOpen, m.StorageInt, m.IdentStruct, m.BracketClose,
			m.BracketOpen, m.StorageFloat, m.IdentStruct, m.BracketClose,
			m.BracketClose,
		}, kinds(t, "[sign foo [int a] [float b]]"))
	})

	t.Run("sign variable", func(t *testing.T) {
		assert.Equal(t,
			[]m.TokenKind{m.BracketOpen, m.KeywordSign, m.IdentVariable, m.StorageInt, m.BracketClose},
			kinds(t, "[sign x int]"))
	})

	t.Run("struct fields", func(t *testing.T) {
		assert.Equal(t, []m.TokenKind{
			m.BracketOpen, m.KeywordStruct, m.IdentStruct,
			m.BracketOpen, m.StorageInt, m.IdentParameter, m.BracketClose,
			m.BracketOpen, m.IdentStruct, m.IdentParameter, m.BracketClose,
			m.BracketClose,
		}, kinds(t, "[struct point [int x] [point next]]"))
	})

	t.Run("region ends with its bracket", func(t *testing.T) {
		assert.Equal(t, []m.TokenKind{
			m.BracketOpen, m.KeywordStruct, m.IdentStruct, m.BracketClose,
			m.BracketOpen, m.IdentFunction, m.IdentVariable, m.BracketClose,
		}, kinds(t, "[struct a] [f b]"))
	})
}

func TestClassifier_Regions(t *testing.T) {
	t.Run("nested keyword does not open a second region", func(t *testing.T) {
		c := NewClassifier()
		for _, s := range scan(t, "[def [sign x") {
			c.Classify(s)
		}

		assert.Equal(t, Region{Kind: RegionParameter, Depth: 2}, c.Region())
	})

	t.Run("region is cleared at its closing bracket", func(t *testing.T) {
		c := NewClassifier()
		for _, s := range scan(t, "[struct a [int b]") {
			c.Classify(s)
		}

		assert.Equal(t, Region{Kind: RegionStruct, Depth: 1}, c.Region())

		c.Classify(span("]", 1, 20))
		assert.Equal(t, RegionNone, c.Region().Kind)
		assert.Equal(t, 0, c.Depth())
	})

	t.Run("at most one region while classifying", func(t *testing.T) {
		c := NewClassifier()
		seen := map[RegionKind]bool{}

		for _, s := range scan(t, "[sign f [int a]] [def [x] [struct y]] [struct p [def q]]") {
			c.Classify(s)
			seen[c.Region().Kind] = true
		}

		assert.True(t, seen[RegionSignature])
		assert.True(t, seen[RegionParameter])
		assert.True(t, seen[RegionStruct])
	})
}

func TestLex_DepthInvariant(t *testing.T) {
	inputs := []string{
		"[+ 1 2]",
		"[[def [a] [* a a]] 3] [print [+ 1 [- 4 2]]]",
		"]] [ [ ] ] ] [",
	}

	for _, input := range inputs {
		tokens, _ := lex(t, input)

		depth := 0

		for _, tok := range tokens {
			switch tok.Kind {
			case m.BracketOpen:
				n, _ := tok.Int()
				assert.Equal(t, int64(depth), n, "input %q", input)
				depth++
			case m.BracketClose:
				depth--
				n, _ := tok.Int()
				assert.Equal(t, int64(depth), n, "input %q", input)
			}

			assert.GreaterOrEqual(t, depth, 0)
		}
	}
}
