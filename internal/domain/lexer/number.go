package lexer

import (
	"math"
	"strconv"

	m "brack.dev/pkg/brack/internal/model"
)

// DecimalWarningLimit is the number of digits above which a float literal
// may lose precision.
const DecimalWarningLimit = 17

const invalidDigit = 37

const (
	helpTooLarge   = "make the number smaller or use a different type"
	helpInvalidNum = "number literals cannot contain other characters than digits and single ."
)

// digitValue maps 0-9 and letters (either case) to 0..35.
func digitValue(b byte) int64 {
	switch {
	case b >= '0' && b <= '9':
		return int64(b - '0')
	case b >= 'A' && b <= 'Z':
		return int64(b-'A') + 10
	case b >= 'a' && b <= 'z':
		return int64(b-'a') + 10
	default:
		return invalidDigit
	}
}

// readInt reads digits of the given base from the start of s. The result
// wraps around on overflow and overflow reports that it did. rest is the
// unread remainder of s.
func readInt(s string, base int64) (num int64, rest string, overflow bool) {
	i := 0

	for ; i < len(s); i++ {
		digit := digitValue(s[i])
		if digit >= base {
			break
		}

		if num > math.MaxInt64/base || (num == math.MaxInt64/base && digit > math.MaxInt64%base) {
			overflow = true
		}

		num = num*base + digit
	}

	return num, s[i:], overflow
}

// number classifies a span starting with a digit or with '-' and a digit.
func (c *Classifier) number(span m.SourceSpan) {
	text := span.Text
	negative := text[0] == '-'

	if negative {
		text = text[1:]
	}

	whole, rest, overflow := readInt(text, 10)

	if rest == "" {
		c.integer(span, whole, negative, overflow)
		return
	}

	switch rest[0] {
	case '.':
		c.float(span, text[:len(text)-len(rest)], rest[1:], negative)
		return
	case 'x':
		c.prefixed(span, rest[1:], 16, negative)
		return
	case 'b':
		c.prefixed(span, rest[1:], 2, negative)
		return
	case 'z':
		if overflow || whole < 2 || whole > 36 {
			c.errorf(span, "base must be between 2 and 36 (inclusive)", "change the number before z to be in that range")
			return
		}

		c.prefixed(span, rest[1:], whole, negative)

		return
	}

	c.errorf(span, "invalid number literal", helpInvalidNum)
}

func (c *Classifier) prefixed(span m.SourceSpan, digits string, base int64, negative bool) {
	num, rest, overflow := readInt(digits, base)
	if rest != "" {
		c.errorf(span, "invalid number literal", helpInvalidNum)
		return
	}

	c.integer(span, num, negative, overflow)
}

func (c *Classifier) integer(span m.SourceSpan, num int64, negative, overflow bool) {
	if negative {
		num = -num
	}

	c.emit(m.LiteralInteger, span, m.Integer(num))

	if overflow {
		c.warnf(span, "number is too large", helpTooLarge)
	}
}

// float classifies a decimal literal from its whole and fraction digits.
// The value is parsed from the digits directly so an overflowing whole part
// keeps its magnitude.
func (c *Classifier) float(span m.SourceSpan, whole, fraction string, negative bool) {
	_, rest, _ := readInt(fraction, 10)
	if rest != "" {
		c.errorf(span, "invalid number literal", helpInvalidNum)
		return
	}

	literal := whole
	if fraction != "" {
		literal += "." + fraction
	}

	// ParseFloat reports ErrRange together with ±Inf, which is handled below.
	value, _ := strconv.ParseFloat(literal, 64)
	if negative {
		value = -value
	}

	c.emit(m.LiteralFloat, span, m.Float(value))

	switch {
	case math.IsInf(value, 0):
		c.warnf(span, "number is too large and will be treated as infinity", "use different type (string?)")
	case len(whole)+len(fraction) > DecimalWarningLimit:
		c.warnf(span, "number has too many digits and may be rounded", "if you want all the digits maybe use string")
	}
}
