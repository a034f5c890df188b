package model

import (
	"fmt"
	"strconv"
)

// TokenKind represents the grammatical role of a classified lexeme.
type TokenKind int

const (
	// KindError is the sentinel kind used for synthetic diagnostics.
	KindError TokenKind = iota
	// BracketOpen is `[`; its payload is the nesting depth before the bracket.
	BracketOpen
	// BracketClose is `]`; its payload is the nesting depth after the bracket.
	BracketClose
	IdentVariable
	IdentFunction
	IdentStruct
	IdentParameter
	LiteralInteger
	LiteralFloat
	LiteralChar
	LiteralString
	LiteralBool
	StoragePointer
	StorageChar
	StorageString
	StorageInt
	StorageFloat
	StorageBool
	KeywordDef
	KeywordStruct
	KeywordSet
	KeywordSign
	// OperatorNothing is `_`.
	OperatorNothing
)

var tokenKindNames = map[TokenKind]string{
	KindError:       "error",
	BracketOpen:     "bracket-open",
	BracketClose:    "bracket-close",
	IdentVariable:   "variable",
	IdentFunction:   "function",
	IdentStruct:     "struct-name",
	IdentParameter:  "parameter",
	LiteralInteger:  "integer",
	LiteralFloat:    "float",
	LiteralChar:     "char",
	LiteralString:   "string",
	LiteralBool:     "bool",
	StoragePointer:  "storage-pointer",
	StorageChar:     "storage-char",
	StorageString:   "storage-string",
	StorageInt:      "storage-int",
	StorageFloat:    "storage-float",
	StorageBool:     "storage-bool",
	KeywordDef:      "def",
	KeywordStruct:   "struct",
	KeywordSet:      "set",
	KeywordSign:     "sign",
	OperatorNothing: "nothing",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}

	return "unknown"
}

// IsIdentifier reports whether the kind is one of the identifier kinds.
func (k TokenKind) IsIdentifier() bool {
	return k >= IdentVariable && k <= IdentParameter
}

// IsLiteral reports whether the kind is one of the literal kinds.
func (k TokenKind) IsLiteral() bool {
	return k >= LiteralInteger && k <= LiteralBool
}

// IsStorage reports whether the kind is one of the storage type kinds.
func (k TokenKind) IsStorage() bool {
	return k >= StoragePointer && k <= StorageBool
}

// IsKeyword reports whether the kind is a keyword.
func (k TokenKind) IsKeyword() bool {
	return k >= KeywordDef && k <= KeywordSign
}

// Payload is the value carried by a token. The set of implementations is
// closed: Text, Integer, Float, Char and Bool.
type Payload interface {
	payload()
}

// Text is a string payload (identifiers and string literals).
type Text string

// Integer is an int64 payload (integer literals and bracket depths).
type Integer int64

// Float is a float64 payload.
type Float float64

// Char is a single byte payload.
type Char byte

// Bool is a boolean payload.
type Bool bool

func (Text) payload()    {}
func (Integer) payload() {}
func (Float) payload()   {}
func (Char) payload()    {}
func (Bool) payload()    {}

// Token is a classified lexeme. A nil Value means the token has no payload.
type Token struct {
	Kind     TokenKind
	Position FilePosition
	Value    Payload
}

// NewToken creates a token.
func NewToken(kind TokenKind, pos FilePosition, value Payload) Token {
	return Token{Kind: kind, Position: pos, Value: value}
}

// Text returns the text payload.
func (t Token) Text() (string, bool) {
	v, ok := t.Value.(Text)
	return string(v), ok
}

// Int returns the integer payload.
func (t Token) Int() (int64, bool) {
	v, ok := t.Value.(Integer)
	return int64(v), ok
}

// Float returns the float payload.
func (t Token) Float() (float64, bool) {
	v, ok := t.Value.(Float)
	return float64(v), ok
}

// Char returns the char payload.
func (t Token) Char() (byte, bool) {
	v, ok := t.Value.(Char)
	return byte(v), ok
}

// Bool returns the bool payload.
func (t Token) Bool() (bool, bool) {
	v, ok := t.Value.(Bool)
	return bool(v), ok
}

// String renders the token in its debug form, e.g. `function(+)` or `[(0)`.
func (t Token) String() string {
	switch t.Kind {
	case BracketOpen:
		n, _ := t.Int()
		return fmt.Sprintf("[(%d)", n)
	case BracketClose:
		n, _ := t.Int()
		return fmt.Sprintf("](%d)", n)
	case IdentVariable, IdentFunction, IdentStruct, IdentParameter, LiteralString:
		s, _ := t.Text()
		if t.Kind == IdentStruct {
			return fmt.Sprintf("struct(%s)", s)
		}

		return fmt.Sprintf("%s(%s)", t.Kind, s)
	case LiteralInteger:
		n, _ := t.Int()
		return fmt.Sprintf("integer(%d)", n)
	case LiteralFloat:
		f, _ := t.Float()
		return fmt.Sprintf("float(%s)", strconv.FormatFloat(f, 'f', 6, 64))
	case LiteralChar:
		c, _ := t.Char()
		return fmt.Sprintf("char(%c)", c)
	case LiteralBool:
		b, _ := t.Bool()
		return fmt.Sprintf("bool(%t)", b)
	case StoragePointer:
		return "*"
	case StorageChar:
		return "char"
	case StorageString:
		return "string"
	case StorageInt:
		return "int"
	case StorageFloat:
		return "float"
	case StorageBool:
		return "bool"
	case OperatorNothing:
		return "_"
	default:
		return t.Kind.String()
	}
}

// Kinds returns the kinds of the given tokens in order.
func Kinds(tokens []Token) []TokenKind {
	kinds := make([]TokenKind, 0, len(tokens))
	for _, t := range tokens {
		kinds = append(kinds, t.Kind)
	}

	return kinds
}
