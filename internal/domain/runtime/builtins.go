package runtime

import (
	"context"
	"fmt"
	"io"
	"strings"

	m "brack.dev/pkg/brack/internal/model"
)

func registerBuiltins(scope *Scope) {
	natives := map[string]Builtin{
		"print":   builtinPrint,
		"println": builtinPrintln,
		"+":       arithmetic('+'),
		"-":       arithmetic('-'),
		"*":       arithmetic('*'),
		"/":       arithmetic('/'),
		"=":       comparison("="),
		"<":       comparison("<"),
		">":       comparison(">"),
	}

	for name, fn := range natives {
		scope.Define(name, &Function{Name: name, Native: fn})
	}
}

func builtinPrint(_ context.Context, e *Evaluator, node *m.SyntaxNode, args []Value) (Value, error) {
	var sb strings.Builder
	for _, arg := range args {
		sb.WriteString(Format(arg))
	}

	if _, err := io.WriteString(e.out, sb.String()); err != nil {
		return nil, fmt.Errorf("print at %s: %w", position(node), err)
	}

	return Nothing{}, nil
}

func builtinPrintln(ctx context.Context, e *Evaluator, node *m.SyntaxNode, args []Value) (Value, error) {
	if _, err := builtinPrint(ctx, e, node, args); err != nil {
		return nil, err
	}

	if _, err := io.WriteString(e.out, "\n"); err != nil {
		return nil, fmt.Errorf("print at %s: %w", position(node), err)
	}

	return Nothing{}, nil
}

// arithmetic folds the arguments left to right. Integers are promoted to
// floats when mixed with floats and + also concatenates strings.
func arithmetic(op byte) Builtin {
	return func(_ context.Context, _ *Evaluator, node *m.SyntaxNode, args []Value) (Value, error) {
		if len(args) == 0 {
			return Int(0), nil
		}

		acc := args[0]

		if len(args) == 1 && op == '-' {
			return apply(node, op, Int(0), acc)
		}

		for _, arg := range args[1:] {
			var err error

			acc, err = apply(node, op, acc, arg)
			if err != nil {
				return nil, err
			}
		}

		if _, ok := acc.(Int); !ok {
			if _, ok := acc.(Float); !ok {
				if _, ok := acc.(String); !ok || op != '+' {
					return nil, newError(node, ErrType, "%c on %s", op, acc.Type())
				}
			}
		}

		return acc, nil
	}
}

func apply(node *m.SyntaxNode, op byte, a, b Value) (Value, error) {
	if sa, ok := a.(String); ok && op == '+' {
		return sa + String(Format(b)), nil
	}

	ai, aInt := a.(Int)
	bi, bInt := b.(Int)

	if aInt && bInt {
		switch op {
		case '+':
			return ai + bi, nil
		case '-':
			return ai - bi, nil
		case '*':
			return ai * bi, nil
		default:
			if bi == 0 {
				return nil, newError(node, ErrDivisionByZero, "%d / 0", ai)
			}

			return ai / bi, nil
		}
	}

	af, okA := toFloat(a)
	bf, okB := toFloat(b)

	if !okA || !okB {
		return nil, newError(node, ErrType, "%c on %s and %s", op, a.Type(), b.Type())
	}

	switch op {
	case '+':
		return Float(af + bf), nil
	case '-':
		return Float(af - bf), nil
	case '*':
		return Float(af * bf), nil
	default:
		return Float(af / bf), nil
	}
}

func toFloat(v Value) (float64, bool) {
	switch v := v.(type) {
	case Int:
		return float64(v), true
	case Float:
		return float64(v), true
	default:
		return 0, false
	}
}

// comparison checks that every adjacent pair of arguments satisfies op.
func comparison(op string) Builtin {
	return func(_ context.Context, _ *Evaluator, node *m.SyntaxNode, args []Value) (Value, error) {
		if len(args) < 2 {
			return nil, newError(node, ErrArity, "%s expects at least 2, got %d", op, len(args))
		}

		for i := 1; i < len(args); i++ {
			c, err := compare(node, op, args[i-1], args[i])
			if err != nil {
				return nil, err
			}

			if !c {
				return Bool(false), nil
			}
		}

		return Bool(true), nil
	}
}

func compare(node *m.SyntaxNode, op string, a, b Value) (bool, error) {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		if !ok {
			if op == "=" {
				return false, nil
			}

			return false, newError(node, ErrType, "%s on %s and %s", op, a.Type(), b.Type())
		}

		if ai, ok := a.(Int); ok {
			if bi, ok := b.(Int); ok {
				return ordered(op, ai, bi), nil
			}
		}

		return ordered(op, af, bf), nil
	}

	switch a := a.(type) {
	case String:
		if b, ok := b.(String); ok {
			return ordered(op, a, b), nil
		}
	case Char:
		if b, ok := b.(Char); ok {
			return ordered(op, a, b), nil
		}
	case Bool:
		if b, ok := b.(Bool); ok && op == "=" {
			return a == b, nil
		}
	case Nothing:
		if _, ok := b.(Nothing); ok && op == "=" {
			return true, nil
		}
	}

	if op == "=" {
		return false, nil
	}

	return false, newError(node, ErrType, "%s on %s and %s", op, a.Type(), b.Type())
}

type ordering interface {
	~int64 | ~float64 | ~string | ~byte
}

func ordered[T ordering](op string, a, b T) bool {
	switch op {
	case "<":
		return a < b
	case ">":
		return a > b
	default:
		return a == b
	}
}
