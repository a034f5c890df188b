// Package runtime evaluates a syntax tree.
//
// The evaluator walks the tree directly. Values are immutable, scopes are
// chained maps and user functions close over the scope they were defined in.
package runtime

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	m "brack.dev/pkg/brack/internal/model"
)

// Value is a runtime value. The implementations are Int, Float, Char,
// String, Bool, Nothing and *Function.
type Value interface {
	// Type returns the name of the value type.
	Type() string
	value()
}

// Int is a 64-bit integer value.
type Int int64

// Float is a 64-bit floating point value.
type Float float64

// Char is a single byte value.
type Char byte

// String is a text value.
type String string

// Bool is a boolean value.
type Bool bool

// Nothing is the value of `_`.
type Nothing struct{}

// Builtin implements a native function.
type Builtin func(ctx context.Context, e *Evaluator, call *m.SyntaxNode, args []Value) (Value, error)

// Function is a callable value. Exactly one of Native and Body is used;
// a user function without a body returns Nothing.
type Function struct {
	Name   string
	Params []string // "" for a `_` parameter
	Body   *m.SyntaxNode
	Scope  *Scope
	Native Builtin
}

func (Int) Type() string       { return "int" }
func (Float) Type() string     { return "float" }
func (Char) Type() string      { return "char" }
func (String) Type() string    { return "string" }
func (Bool) Type() string      { return "bool" }
func (Nothing) Type() string   { return "nothing" }
func (*Function) Type() string { return "function" }

func (Int) value()       {}
func (Float) value()     {}
func (Char) value()      {}
func (String) value()    {}
func (Bool) value()      {}
func (Nothing) value()   {}
func (*Function) value() {}

// Format renders a value the way print writes it.
func Format(v Value) string {
	switch v := v.(type) {
	case Int:
		return strconv.FormatInt(int64(v), 10)
	case Float:
		return fmt.Sprintf("%f", float64(v))
	case Char:
		return string([]byte{byte(v)})
	case String:
		return string(v)
	case Bool:
		return strconv.FormatBool(bool(v))
	case Nothing:
		return "_"
	case *Function:
		var sb strings.Builder

		sb.WriteString("[")
		sb.WriteString(v.Name)

		for _, p := range v.Params {
			if p == "" {
				p = "_"
			}

			sb.WriteString(" ")
			sb.WriteString(p)
		}

		sb.WriteString("]")

		return sb.String()
	default:
		return "<error>"
	}
}
