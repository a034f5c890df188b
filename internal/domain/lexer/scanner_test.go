package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "brack.dev/pkg/brack/internal/model"
)

func span(text string, line, col int) m.SourceSpan {
	return m.SourceSpan{Text: text, Position: m.NewPosition("test.brk", line, col)}
}

func scan(t *testing.T, input string, opts ...Option) []m.SourceSpan {
	t.Helper()

	spans, err := Scan(strings.NewReader(input), "test.brk", opts...)
	require.NoError(t, err)

	return spans
}

func TestScan(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []m.SourceSpan
	}{
		{
			name:  "brackets are separate spans",
			input: "[+ 1 2]",
			want: []m.SourceSpan{
				span("[", 1, 1), span("+", 1, 2), span("1", 1, 4), span("2", 1, 6), span("]", 1, 7),
			},
		},
		{
			name:  "newline resets the column",
			input: "[a\n  b]",
			want:  []m.SourceSpan{span("[", 1, 1), span("a", 1, 2), span("b", 2, 3), span("]", 2, 4)},
		},
		{
			name:  "tabs and carriage returns separate lexemes",
			input: "a\tb\r\nc",
			want:  []m.SourceSpan{span("a", 1, 1), span("b", 1, 3), span("c", 2, 1)},
		},
		{
			name:  "line comment keeps both slashes",
			input: "a // hi\nb",
			want:  []m.SourceSpan{span("a", 1, 1), span("// hi\n", 1, 3), span("b", 2, 1)},
		},
		{
			name:  "line comment directly after a lexeme",
			input: "a//x",
			want:  []m.SourceSpan{span("a", 1, 1), span("//x", 1, 2)},
		},
		{
			name:  "shortest block comment",
			input: "/*/ x",
			want:  []m.SourceSpan{span("/*/", 1, 1), span("x", 1, 5)},
		},
		{
			name:  "block comment over lines",
			input: "/* a\n b */c",
			want:  []m.SourceSpan{span("/* a\n b */", 1, 1), span("c", 2, 6)},
		},
		{
			name:  "quoted literal keeps whitespace and delimiters",
			input: `[print "a b"]`,
			want:  []m.SourceSpan{span("[", 1, 1), span("print", 1, 2), span(`"a b"`, 1, 8), span("]", 1, 13)},
		},
		{
			name:  "quote inside a lexeme is literal",
			input: `ab"c`,
			want:  []m.SourceSpan{span(`ab"c`, 1, 1)},
		},
		{
			name:  "escapes are resolved",
			input: `"\n\t\x41\q\0\""`,
			want:  []m.SourceSpan{span("\"\n\tAq\x00\"\"", 1, 1)},
		},
		{
			name:  "newline inside a quote advances the line",
			input: "'\n' x",
			want:  []m.SourceSpan{span("'\n'", 1, 1), span("x", 2, 3)},
		},
		{
			name:  "single slash is an ordinary lexeme",
			input: "[/ 4 2]",
			want:  []m.SourceSpan{span("[", 1, 1), span("/", 1, 2), span("4", 1, 4), span("2", 1, 6), span("]", 1, 7)},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scan(t, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScan_Unclosed(t *testing.T) {
	t.Run("string at end of input", func(t *testing.T) {
		spans := scan(t, `"unterminated`)
		require.Len(t, spans, 1)
		assert.Equal(t, `"unterminated`, spans[0].Text)
		assert.True(t, spans[0].Unclosed)
	})

	t.Run("escaped quote does not close", func(t *testing.T) {
		spans := scan(t, `"abc\"`)
		require.Len(t, spans, 1)
		assert.Equal(t, `"abc"`, spans[0].Text)
		assert.True(t, spans[0].Unclosed)
	})

	t.Run("block comment at end of input", func(t *testing.T) {
		spans := scan(t, "x /* abc")
		require.Len(t, spans, 2)
		assert.Equal(t, "/* abc", spans[1].Text)
		assert.True(t, spans[1].Unclosed)
	})

	t.Run("truncated hex escape", func(t *testing.T) {
		spans := scan(t, `"\x4`)
		require.Len(t, spans, 1)
		assert.Equal(t, `"x4`, spans[0].Text)
		assert.True(t, spans[0].Unclosed)
	})
}

func TestScan_Fatal(t *testing.T) {
	t.Run("invalid hex escape", func(t *testing.T) {
		_, err := Scan(strings.NewReader(`"\xZZ"`), "test.brk")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidEscape))

		var fatal *FatalError
		require.ErrorAs(t, err, &fatal)
		assert.Equal(t, m.LevelError, fatal.Diagnostic.Level)
		assert.Equal(t, 1, fatal.Diagnostic.Position.Line)
	})

	t.Run("lexeme longer than the limit", func(t *testing.T) {
		_, err := Scan(strings.NewReader("abcdef"), "test.brk", WithMaxLexemeLength(4))
		assert.ErrorIs(t, err, ErrLexemeTooLong)
	})

	t.Run("quoted literal longer than the limit", func(t *testing.T) {
		_, err := Scan(strings.NewReader(`"abcdef"`), "test.brk", WithMaxLexemeLength(4))
		assert.ErrorIs(t, err, ErrLexemeTooLong)
	})

	t.Run("lexeme at the limit", func(t *testing.T) {
		spans := scan(t, "abcd", WithMaxLexemeLength(4))
		assert.Equal(t, []m.SourceSpan{span("abcd", 1, 1)}, spans)
	})

	t.Run("default limit", func(t *testing.T) {
		_, err := Scan(strings.NewReader(strings.Repeat("a", DefaultMaxLexemeLength+1)), "test.brk")
		assert.ErrorIs(t, err, ErrLexemeTooLong)
	})
}

// rebuild places every span at its recorded position.
func rebuild(spans []m.SourceSpan) string {
	var lines []string

	for _, s := range spans {
		for len(lines) < s.Position.Line {
			lines = append(lines, "")
		}

		i := s.Position.Line - 1
		lines[i] += strings.Repeat(" ", s.Position.Column-1-len(lines[i])) + s.Text
	}

	return strings.Join(lines, "\n")
}

func normalize(input string) string {
	input = strings.NewReplacer("\t", " ", "\r", " ").Replace(input)

	lines := strings.Split(input, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func TestScan_RoundTrip(t *testing.T) {
	inputs := []string{
		"[+ 1 2]",
		"[set x  5]\n\n  [print x]\t[+ 1 2]",
		"[def [a b]\n\t[* a b]]\r\n[println [[def [] 1]]]",
		"  ]] [[ a-b  c_d 12.5 0xFF _ ",
	}

	for _, input := range inputs {
		spans := scan(t, input)
		assert.Equal(t, normalize(input), rebuild(spans), "input %q", input)
	}
}
