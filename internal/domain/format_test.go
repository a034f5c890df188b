package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brack.dev/pkg/brack/internal/domain/lexer"
	m "brack.dev/pkg/brack/internal/model"
)

func lexTokens(t *testing.T, src string) []m.Token {
	t.Helper()

	tokens, diags, err := lexer.Lex(strings.NewReader(src), "fmt.brk")
	require.NoError(t, err)
	require.False(t, diags.HasErrors(), "diagnostics: %v", diags.Messages())

	return tokens
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "empty", src: "", want: ""},
		{name: "spacing", src: "[  +   1\t2  ]", want: "[+ 1 2]\n"},
		{name: "one form per line", src: "[f] [g]\n\n\n[h]", want: "[f]\n[g]\n[h]\n"},
		{name: "nested", src: "[set x [def [a b]\n  [* a b]]] [x 2 3]", want: "[set x [def [a b] [* a b]]]\n[x 2 3]\n"},
		{name: "comments dropped", src: "// hi\n[f] /* c */ [g]", want: "[f]\n[g]\n"},
		{name: "string escapes", src: `[print "a\nb\t\"q\"\\"]`, want: `[print "a\nb\t\"q\"\\"]` + "\n"},
		{name: "control byte", src: `[print "\x01"]`, want: `[print "\x01"]` + "\n"},
		{name: "chars", src: `[f 'a' '\'' '\0']`, want: `[f 'a' '\'' '\0']` + "\n"},
		{name: "numbers", src: "[f 0x1F 2z101 -7 1.50 -2.]", want: "[f 31 5 -7 1.5 -2.0]\n"},
		{name: "keywords and nothing", src: "[def [_ a] [sign b int]]", want: "[def [_ a] [sign b int]]\n"},
		{name: "bools", src: "[f true false]", want: "[f true false]\n"},
		{name: "top level literals", src: "1 \"s\" [f]", want: "1\n\"s\"\n[f]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(lexTokens(t, tt.src)))
		})
	}
}

func TestFormat_Unclosed(t *testing.T) {
	tokens, _, err := lexer.Lex(strings.NewReader("[f [g"), "fmt.brk")
	require.NoError(t, err)

	assert.Equal(t, "[f [g\n", Format(tokens))
}

func TestFormat_Infinity(t *testing.T) {
	src := "[f " + strings.Repeat("9", 400) + ".5]"

	formatted := Format(lexTokens(t, src))
	again := Format(lexTokens(t, formatted))

	assert.Equal(t, formatted, again)
	assert.True(t, strings.HasPrefix(formatted, "[f 1000"))
}

func TestFormat_Idempotent(t *testing.T) {
	sources := []string{
		"[println [+ 1 2]]",
		"[set sq [def [a _] [* a a]]] [print [sq 3]]",
		"// c\n[def [sign f [int]] 1]",
		"[struct point [x int] [y float]]",
		`[print "tab\there" 'x' 1.25 -3 0b101 36zZZ]`,
		"[f [g [h]]]\n[i]",
		"[def [] _]",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			first := lexTokens(t, src)
			formatted := Format(first)

			second := lexTokens(t, formatted)
			assert.Equal(t, m.Kinds(first), m.Kinds(second))
			assert.Equal(t, formatted, Format(second))
		})
	}
}
