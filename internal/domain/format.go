package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	m "brack.dev/pkg/brack/internal/model"
)

// Format renders tokens as canonical source. Tokens are separated by one
// space except after `[` and before `]`, and every top-level form ends its
// line. Comments are not tokens and therefore do not survive.
func Format(tokens []m.Token) string {
	var sb strings.Builder

	depth := 0
	lineStart := true

	for i, tok := range tokens {
		if !lineStart && tok.Kind != m.BracketClose && tokens[i-1].Kind != m.BracketOpen {
			sb.WriteByte(' ')
		}

		sb.WriteString(render(tok))

		lineStart = false

		switch tok.Kind {
		case m.BracketOpen:
			depth++
		case m.BracketClose:
			if depth > 0 {
				depth--
			}
		}

		if depth == 0 {
			sb.WriteByte('\n')

			lineStart = true
		}
	}

	if !lineStart {
		sb.WriteByte('\n')
	}

	return sb.String()
}

func render(tok m.Token) string {
	switch {
	case tok.Kind == m.BracketOpen:
		return "["
	case tok.Kind == m.BracketClose:
		return "]"
	case tok.Kind.IsIdentifier():
		s, _ := tok.Text()
		return s
	case tok.Kind.IsLiteral():
		return literal(tok)
	default:
		// Storage types, keywords and `_` render as their source spelling.
		return tok.String()
	}
}

func literal(tok m.Token) string {
	switch tok.Kind {
	case m.LiteralString:
		s, _ := tok.Text()
		return `"` + escape(s, '"') + `"`
	case m.LiteralChar:
		c, _ := tok.Char()
		return "'" + escape(string([]byte{c}), '\'') + "'"
	case m.LiteralInteger:
		n, _ := tok.Int()
		return strconv.FormatInt(n, 10)
	case m.LiteralFloat:
		f, _ := tok.Float()
		return formatFloat(f)
	default:
		b, _ := tok.Bool()
		return strconv.FormatBool(b)
	}
}

// formatFloat keeps a decimal point so the literal lexes as a float again.
// Infinity is written as a decimal too large for float64.
func formatFloat(f float64) string {
	if math.IsInf(f, 0) {
		digits := "1" + strings.Repeat("0", 309) + ".0"
		if f < 0 {
			return "-" + digits
		}

		return digits
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

func escape(s string, quote byte) string {
	var sb strings.Builder

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == quote || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c == 0:
			sb.WriteString(`\0`)
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, c)
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}
