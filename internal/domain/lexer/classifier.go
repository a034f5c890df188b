package lexer

import (
	"log/slog"
	"strings"

	m "brack.dev/pkg/brack/internal/model"
)

// RegionKind identifies a context in which identifiers are classified
// differently.
type RegionKind int

const (
	// RegionNone means no region is active.
	RegionNone RegionKind = iota
	// RegionStruct is opened by the struct keyword.
	RegionStruct
	// RegionSignature is opened by the sign keyword.
	RegionSignature
	// RegionParameter is opened by the def keyword.
	RegionParameter
)

func (k RegionKind) String() string {
	switch k {
	case RegionStruct:
		return "struct"
	case RegionSignature:
		return "signature"
	case RegionParameter:
		return "parameter"
	default:
		return "none"
	}
}

// Region is the active classification region and the depth it is bound to.
type Region struct {
	Kind  RegionKind
	Depth int
}

func (r Region) active() bool {
	return r.Kind != RegionNone
}

// reservedWords maps the storage type names and keywords to their kinds.
var reservedWords = map[string]m.TokenKind{
	"*":      m.StoragePointer,
	"char":   m.StorageChar,
	"string": m.StorageString,
	"int":    m.StorageInt,
	"float":  m.StorageFloat,
	"bool":   m.StorageBool,
	"set":    m.KeywordSet,
	"struct": m.KeywordStruct,
	"sign":   m.KeywordSign,
	"def":    m.KeywordDef,
}

// Classifier turns raw spans into tokens. It is fed one span at a time and
// keeps the bracket depth and the active region between calls.
type Classifier struct {
	depth  int
	region Region

	tokens []m.Token
	diags  m.Diagnostics
	last   *m.SourceSpan
}

// NewClassifier creates a classifier at depth 0 with no active region.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Depth returns the current bracket nesting depth.
func (c *Classifier) Depth() int {
	return c.depth
}

// Region returns the active region.
func (c *Classifier) Region() Region {
	return c.region
}

// Classify classifies a single span.
func (c *Classifier) Classify(span m.SourceSpan) {
	if span.Text == "" {
		slog.Warn("empty lexeme skipped", "position", span.Position.String())
		return
	}

	c.last = &span

	switch span.Text[0] {
	case '[':
		c.openBracket(span)
		return
	case ']':
		c.closeBracket(span)
		return
	case '/':
		if c.comment(span) {
			return
		}
	case '"':
		c.stringLiteral(span)
		return
	case '\'':
		c.charLiteral(span)
		return
	case '_':
		if len(span.Text) == 1 {
			c.emit(m.OperatorNothing, span, nil)
			return
		}
	}

	if isNumeric(span.Text) {
		c.number(span)
		return
	}

	if c.depth == 0 {
		c.errorf(span, "cannot use identifiers directly", "try encapsulating it in []")
		return
	}

	if kind := reservedWords[span.Text]; kind.IsKeyword() {
		c.keyword(kind, span)
		return
	}

	switch span.Text {
	case "true":
		c.emit(m.LiteralBool, span, m.Bool(true))
		return
	case "false":
		c.emit(m.LiteralBool, span, m.Bool(false))
		return
	}

	switch c.region.Kind {
	case RegionSignature:
		c.signatureIdentifier(span)
	case RegionParameter:
		c.parameterIdentifier(span)
	case RegionStruct:
		c.structIdentifier(span)
	default:
		if c.previous() == m.BracketOpen {
			c.emit(m.IdentFunction, span, m.Text(span.Text))
		} else {
			c.emit(m.IdentVariable, span, m.Text(span.Text))
		}
	}
}

// Finish reports unclosed brackets and returns the result.
func (c *Classifier) Finish() ([]m.Token, m.Diagnostics) {
	if c.depth > 0 && c.last != nil {
		c.diags.Add(m.Diagnostic{
			Level:    m.LevelError,
			Position: c.last.Position,
			Text:     "]",
			Message:  "missing 1 or more closing brackets",
			Help:     "try adding ]",
		})
	}

	return c.tokens, c.diags
}

func (c *Classifier) openBracket(span m.SourceSpan) {
	if c.region.Kind == RegionSignature && c.region.Depth == c.depth {
		c.reclassifyLast(m.IdentStruct, m.IdentFunction)
	}

	c.emit(m.BracketOpen, span, m.Integer(c.depth))
	c.depth++
}

func (c *Classifier) closeBracket(span m.SourceSpan) {
	if c.region.active() && c.region.Depth == c.depth {
		c.region = Region{}
	}

	if c.depth == 0 {
		c.errorf(span, "missing [ before ]", "add opening bracket somewhere before this closing one")
		return
	}

	c.depth--
	c.emit(m.BracketClose, span, m.Integer(c.depth))
}

// comment consumes comment spans. It returns false for spans that only
// start with '/'.
func (c *Classifier) comment(span m.SourceSpan) bool {
	if len(span.Text) < 2 {
		return false
	}

	switch span.Text[1] {
	case '/':
		return true
	case '*':
		if span.Unclosed || len(span.Text) < 3 || !strings.HasSuffix(span.Text, "*/") {
			c.errorf(span, "block comment is not closed", "close it with */")
		}

		return true
	default:
		return false
	}
}

func (c *Classifier) stringLiteral(span m.SourceSpan) {
	text := span.Text
	if span.Unclosed || len(text) < 2 || text[len(text)-1] != '"' {
		c.errorf(span, "string literal is not closed", "try adding closing \"")
		return
	}

	c.emit(m.LiteralString, span, m.Text(text[1:len(text)-1]))
}

func (c *Classifier) charLiteral(span m.SourceSpan) {
	text := span.Text
	if span.Unclosed || len(text) < 2 || text[len(text)-1] != '\'' {
		c.errorf(span, "char literal is not closed", "try adding closing '")
		return
	}

	if len(text) != 3 {
		c.errorf(span, "char literal can only contain one character", "maybe you want to use string (\")")
		return
	}

	c.emit(m.LiteralChar, span, m.Char(text[1]))
}

func (c *Classifier) keyword(kind m.TokenKind, span m.SourceSpan) {
	if c.previous() != m.BracketOpen {
		c.errorf(span, "keyword must be used as function", "try encapsulating the action in []")
		return
	}

	c.emit(kind, span, nil)

	if c.region.active() {
		return
	}

	switch kind {
	case m.KeywordStruct:
		c.region = Region{Kind: RegionStruct, Depth: c.depth}
	case m.KeywordSign:
		c.region = Region{Kind: RegionSignature, Depth: c.depth}
	case m.KeywordDef:
		c.region = Region{Kind: RegionParameter, Depth: c.depth + 1}
	}
}

func (c *Classifier) signatureIdentifier(span m.SourceSpan) {
	if c.region.Depth == c.depth {
		c.reclassifyLast(m.IdentStruct, m.IdentVariable)
	}

	if kind := reservedWords[span.Text]; kind.IsStorage() {
		c.emit(kind, span, nil)
		return
	}

	c.emit(m.IdentStruct, span, m.Text(span.Text))
}

func (c *Classifier) parameterIdentifier(span m.SourceSpan) {
	if c.region.Depth > c.depth && c.previous() == m.BracketOpen {
		c.emit(m.IdentStruct, span, m.Text(span.Text))
		return
	}

	c.emit(m.IdentParameter, span, m.Text(span.Text))
}

func (c *Classifier) structIdentifier(span m.SourceSpan) {
	if c.region.Depth == c.depth {
		c.emit(m.IdentStruct, span, m.Text(span.Text))
		return
	}

	if c.previous() != m.BracketOpen {
		c.emit(m.IdentParameter, span, m.Text(span.Text))
		return
	}

	if kind := reservedWords[span.Text]; kind.IsStorage() {
		c.emit(kind, span, nil)
		return
	}

	c.emit(m.IdentStruct, span, m.Text(span.Text))
}

// previous returns the kind of the last emitted token, or KindError when
// nothing was emitted yet.
func (c *Classifier) previous() m.TokenKind {
	if len(c.tokens) == 0 {
		return m.KindError
	}

	return c.tokens[len(c.tokens)-1].Kind
}

// reclassifyLast changes the kind of the last token in place when it is from.
func (c *Classifier) reclassifyLast(from, to m.TokenKind) {
	if len(c.tokens) == 0 {
		return
	}

	last := &c.tokens[len(c.tokens)-1]
	if last.Kind == from {
		last.Kind = to
	}
}

func (c *Classifier) emit(kind m.TokenKind, span m.SourceSpan, value m.Payload) {
	c.tokens = append(c.tokens, m.NewToken(kind, span.Position, value))
}

func (c *Classifier) errorf(span m.SourceSpan, message, help string) {
	c.diags.Add(m.SpanDiagnostic(m.LevelError, span, message, help))
}

func (c *Classifier) warnf(span m.SourceSpan, message, help string) {
	c.diags.Add(m.SpanDiagnostic(m.LevelWarning, span, message, help))
}

func isNumeric(text string) bool {
	if isDigit(text[0]) {
		return true
	}

	return len(text) > 1 && text[0] == '-' && isDigit(text[1])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
