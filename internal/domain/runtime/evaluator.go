package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	m "brack.dev/pkg/brack/internal/model"
)

// DefaultMaxCallDepth limits nested calls of user functions.
const DefaultMaxCallDepth = 10000

// Evaluator executes syntax trees against a global scope holding the
// built-in functions. Output of print goes to the writer given to New.
type Evaluator struct {
	out     io.Writer
	globals *Scope
	depth   int
	limit   int
}

// New creates an evaluator writing to out.
func New(out io.Writer) *Evaluator {
	e := &Evaluator{
		out:     out,
		globals: NewScope(nil),
		limit:   DefaultMaxCallDepth,
	}
	registerBuiltins(e.globals)

	return e
}

// Globals returns the global scope.
func (e *Evaluator) Globals() *Scope {
	return e.globals
}

// SetMaxCallDepth changes the call depth limit.
func (e *Evaluator) SetMaxCallDepth(limit int) {
	e.limit = limit
}

// Eval executes the top-level forms of the tree in order. Bindings made
// by one tree stay visible to later calls.
func (e *Evaluator) Eval(ctx context.Context, tree *m.SyntaxTree) error {
	for i, node := range tree.Nodes {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("evaluate %s: %w", tree.Filename, err)
		}

		if node.Kind == m.NodeNothing {
			continue
		}

		if _, err := e.eval(ctx, node, e.globals); err != nil {
			slog.Debug("evaluation failed", "file", tree.Filename, "form", i, "error", err)
			return err
		}
	}

	return nil
}

func (e *Evaluator) eval(ctx context.Context, node *m.SyntaxNode, scope *Scope) (Value, error) {
	switch node.Kind {
	case m.NodeValueInteger:
		n, _ := node.Token.Int()
		return Int(n), nil
	case m.NodeValueFloat:
		f, _ := node.Token.Float()
		return Float(f), nil
	case m.NodeValueChar:
		c, _ := node.Token.Char()
		return Char(c), nil
	case m.NodeValueString:
		s, _ := node.Token.Text()
		return String(s), nil
	case m.NodeValueBool:
		b, _ := node.Token.Bool()
		return Bool(b), nil
	case m.NodeNothing:
		return Nothing{}, nil
	case m.NodeIdentifier:
		name, _ := node.Token.Text()

		v, ok := scope.Lookup(name)
		if !ok {
			return nil, newError(node, ErrUnknownIdentifier, "%s", name)
		}

		return v, nil
	case m.NodeFunctionCall:
		return e.call(ctx, node, scope)
	case m.NodeVariableSetter, m.NodeFunctionSetter:
		return e.set(ctx, node, scope)
	case m.NodeFunctionDefinition:
		return define(node, scope), nil
	default:
		return nil, newError(node, ErrUnsupported, "%s", node.Kind)
	}
}

func (e *Evaluator) set(ctx context.Context, node *m.SyntaxNode, scope *Scope) (Value, error) {
	name, _ := node.Token.Text()

	var v Value = Nothing{}

	if len(node.Children) > 0 {
		var err error

		v, err = e.eval(ctx, node.Children[0], scope)
		if err != nil {
			return nil, err
		}
	}

	if fn, ok := v.(*Function); ok && fn.Name == "" {
		fn.Name = name
	}

	scope.Define(name, v)

	return v, nil
}

// define creates a closure over scope. The last child is the body unless
// every child is a parameter.
func define(node *m.SyntaxNode, scope *Scope) *Function {
	fn := &Function{Scope: scope}

	for i, child := range node.Children {
		isLast := i == len(node.Children)-1

		switch {
		case child.Kind == m.NodeIdentifier && child.Token.Kind == m.IdentParameter:
			name, _ := child.Token.Text()
			fn.Params = append(fn.Params, name)
		case child.Kind == m.NodeNothing && !isLast:
			fn.Params = append(fn.Params, "")
		default:
			fn.Body = child
		}
	}

	return fn
}

func (e *Evaluator) call(ctx context.Context, node *m.SyntaxNode, scope *Scope) (Value, error) {
	if len(node.Children) == 0 {
		return Nothing{}, nil
	}

	callee, err := e.eval(ctx, node.Children[0], scope)
	if err != nil {
		return nil, err
	}

	if _, ok := callee.(Nothing); ok {
		return Nothing{}, nil
	}

	fn, ok := callee.(*Function)
	if !ok {
		return nil, newError(node, ErrNotCallable, "%s", callee.Type())
	}

	args := make([]Value, 0, len(node.Children)-1)

	for _, child := range node.Children[1:] {
		v, err := e.eval(ctx, child, scope)
		if err != nil {
			return nil, err
		}

		args = append(args, v)
	}

	return e.invoke(ctx, fn, node, args)
}

func (e *Evaluator) invoke(ctx context.Context, fn *Function, node *m.SyntaxNode, args []Value) (Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if fn.Native != nil {
		return fn.Native(ctx, e, node, args)
	}

	if len(args) != len(fn.Params) {
		return nil, newError(node, ErrArity, "%s expects %d, got %d", Format(fn), len(fn.Params), len(args))
	}

	if e.depth >= e.limit {
		return nil, newError(node, ErrCallDepth, "%d nested calls", e.depth)
	}

	e.depth++
	defer func() { e.depth-- }()

	local := NewScope(fn.Scope)

	for i, param := range fn.Params {
		if param != "" {
			local.Define(param, args[i])
		}
	}

	if fn.Body == nil {
		return Nothing{}, nil
	}

	return e.eval(ctx, fn.Body, local)
}
