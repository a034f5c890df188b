package runtime

import (
	"errors"
	"fmt"

	m "brack.dev/pkg/brack/internal/model"
)

var (
	// ErrUnknownIdentifier is returned when a name is not bound.
	ErrUnknownIdentifier = errors.New("unknown identifier")
	// ErrNotCallable is returned when calling a value that is not a function.
	ErrNotCallable = errors.New("value is not callable")
	// ErrArity is returned when a function gets the wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")
	// ErrDivisionByZero is returned for integer division by zero.
	ErrDivisionByZero = errors.New("integer division by zero")
	// ErrType is returned when an operand has an unsupported type.
	ErrType = errors.New("invalid operand type")
	// ErrUnsupported is returned for nodes that cannot be evaluated.
	ErrUnsupported = errors.New("unsupported operation")
	// ErrCallDepth is returned when calls nest deeper than the evaluator allows.
	ErrCallDepth = errors.New("call stack exhausted")
)

// RuntimeError is an evaluation failure at a source position.
type RuntimeError struct {
	Position m.FilePosition
	Detail   string
	Err      error
}

func (e *RuntimeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Position, e.Err)
	}

	return fmt.Sprintf("%s: %s: %s", e.Position, e.Err, e.Detail)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// Diagnostic converts the error for rendering next to lexer and parser
// diagnostics.
func (e *RuntimeError) Diagnostic() m.Diagnostic {
	return m.Diagnostic{
		Level:    m.LevelError,
		Position: e.Position,
		Text:     e.Detail,
		Message:  e.Err.Error(),
	}
}

func newError(node *m.SyntaxNode, err error, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Position: position(node),
		Detail:   fmt.Sprintf(format, args...),
		Err:      err,
	}
}

// position finds the first token position in the subtree.
func position(node *m.SyntaxNode) m.FilePosition {
	if node == nil {
		return m.FilePosition{}
	}

	if node.Token != nil {
		return node.Token.Position
	}

	for _, child := range node.Children {
		if pos := position(child); pos.Line != 0 {
			return pos
		}
	}

	return m.FilePosition{}
}
