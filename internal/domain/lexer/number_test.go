package lexer

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "brack.dev/pkg/brack/internal/model"
)

// lexValue lexes a single literal inside a call and returns its token.
func lexValue(t *testing.T, literal string) (*m.Token, m.Diagnostics) {
	t.Helper()

	tokens, diags := lex(t, "[f "+literal+"]")
	require.GreaterOrEqual(t, len(tokens), 3)

	if len(tokens) == 3 {
		return nil, diags
	}

	return &tokens[2], diags
}

func TestReadInt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		base     int64
		want     int64
		rest     string
		overflow bool
	}{
		{name: "decimal", input: "1234", base: 10, want: 1234},
		{name: "stops at first invalid digit", input: "12x3", base: 10, want: 12, rest: "x3"},
		{name: "hex mixed case", input: "fF", base: 16, want: 255},
		{name: "base 36", input: "Zz", base: 36, want: 35*36 + 35},
		{name: "max int64", input: "9223372036854775807", base: 10, want: math.MaxInt64},
		{name: "wraps past max int64", input: "9223372036854775808", base: 10, want: math.MinInt64, overflow: true},
		{name: "empty", input: "", base: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest, overflow := readInt(tt.input, tt.base)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rest, rest)
			assert.Equal(t, tt.overflow, overflow)
		})
	}
}

func TestLex_Integers(t *testing.T) {
	tests := []struct {
		literal string
		want    int64
	}{
		{"42", 42},
		{"-7", -7},
		{"0", 0},
		{"0xFF", 255},
		{"0xff", 255},
		{"-0x10", -16},
		{"0b101", 5},
		{"2z101", 5},
		{"36zZ", 35},
		{"8z17", 15},
		{"0x", 0},
		{"1b", 0},
		{"16z", 0},
	}

	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			tok, diags := lexValue(t, tt.literal)
			require.NotNil(t, tok)
			assert.Empty(t, diags)
			assert.Equal(t, m.LiteralInteger, tok.Kind)

			n, ok := tok.Int()
			assert.True(t, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestLex_IntegerOverflow(t *testing.T) {
	tok, diags := lexValue(t, "123456789012345678901")
	require.NotNil(t, tok)

	n, _ := tok.Int()
	assert.Equal(t, int64(-5670419503621182411), n)

	require.Len(t, diags, 1)
	assert.Equal(t, m.LevelWarning, diags[0].Level)
	assert.Equal(t, "number is too large", diags[0].Message)
	assert.Equal(t, "123456789012345678901", diags[0].Text)
}

func TestLex_Floats(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		tok, diags := lexValue(t, "1.5")
		require.NotNil(t, tok)
		assert.Empty(t, diags)
		assert.Equal(t, m.LiteralFloat, tok.Kind)

		f, ok := tok.Float()
		assert.True(t, ok)
		assert.InDelta(t, 1.5, f, 1e-12)
	})

	t.Run("negative", func(t *testing.T) {
		tok, _ := lexValue(t, "-2.25")
		require.NotNil(t, tok)

		f, _ := tok.Float()
		assert.InDelta(t, -2.25, f, 1e-12)
	})

	t.Run("no fraction digits", func(t *testing.T) {
		tok, diags := lexValue(t, "3.")
		require.NotNil(t, tok)
		assert.Empty(t, diags)

		f, _ := tok.Float()
		assert.InDelta(t, 3.0, f, 1e-12)
	})

	t.Run("overflowing whole part keeps its magnitude", func(t *testing.T) {
		tok, diags := lexValue(t, "123456789012345678901.5")
		require.NotNil(t, tok)
		assert.Equal(t, m.LiteralFloat, tok.Kind)

		f, _ := tok.Float()
		assert.InEpsilon(t, 1.2345678901234568e+20, f, 1e-15)

		require.Len(t, diags, 1)
		assert.Equal(t, m.LevelWarning, diags[0].Level)
		assert.Equal(t, "number has too many digits and may be rounded", diags[0].Message)
	})

	t.Run("negative overflowing whole part", func(t *testing.T) {
		tok, _ := lexValue(t, "-123456789012345678901.0")
		require.NotNil(t, tok)

		f, _ := tok.Float()
		assert.InEpsilon(t, -1.2345678901234568e+20, f, 1e-15)
	})

	t.Run("infinity", func(t *testing.T) {
		tok, diags := lexValue(t, "1"+strings.Repeat("0", 400)+".0")
		require.NotNil(t, tok)

		f, _ := tok.Float()
		assert.True(t, math.IsInf(f, 1))

		require.Len(t, diags, 1)
		assert.Equal(t, "number is too large and will be treated as infinity", diags[0].Message)
	})

	t.Run("seventeen digits is fine", func(t *testing.T) {
		_, diags := lexValue(t, "1234567890.1234567")
		assert.Empty(t, diags)
	})
}

func TestLex_InvalidNumbers(t *testing.T) {
	tests := []struct {
		literal string
		message string
	}{
		{"12ab", "invalid number literal"},
		{"1.2.3", "invalid number literal"},
		{"1.5x", "invalid number literal"},
		{"0xFG", "invalid number literal"},
		{"0b102", "invalid number literal"},
		{"1e5", "invalid number literal"},
		{"1z0", "base must be between 2 and 36 (inclusive)"},
		{"37z1", "base must be between 2 and 36 (inclusive)"},
		{"99999999999999999999z1", "base must be between 2 and 36 (inclusive)"},
	}

	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			tok, diags := lexValue(t, tt.literal)
			assert.Nil(t, tok)

			require.Len(t, diags, 1)
			assert.Equal(t, m.LevelError, diags[0].Level)
			assert.Equal(t, tt.message, diags[0].Message)
			assert.Equal(t, tt.literal, diags[0].Text)
		})
	}
}

func TestLex_NumbersOutsideBrackets(t *testing.T) {
	tokens, diags := lex(t, "42")
	assert.Empty(t, diags)
	assert.Equal(t, []m.TokenKind{m.LiteralInteger}, m.Kinds(tokens))
}
