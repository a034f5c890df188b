// Package parser builds a syntax tree from classified tokens.
//
// The parser is recursive descent over a token cursor and never backtracks.
// On a structural error it records a diagnostic and skips forward to the
// balanced closing bracket so that the following forms are still parsed.
package parser

import (
	"log/slog"

	m "brack.dev/pkg/brack/internal/model"
)

const (
	msgExpectedOpen   = "expected ["
	msgExpectedClose  = "expected ]"
	msgExpectedForm   = "expected [, ], function identifier, def, struct, set, sign or _"
	msgExpectedValue  = "expected [, ], variable identifier or literal"
	msgUnexpectedEnd  = "unexpected end"
	msgCallNothing    = "call with nothing"
	msgUnsupported    = "unsupported construct"
	msgSingleBody     = "function body can only contain one statement"
	helpCloseBody     = "try closing the function body"
	helpAddClose      = "try adding ]"
	helpCallNothing   = "did you forget to remove _?"
	helpExpectedValue = "use one of the things above"
)

// valueResult tells the caller of value what happened.
type valueResult int

const (
	// valueNode means a node was produced.
	valueNode valueResult = iota
	// valueClose means a ']' was consumed instead of a value.
	valueClose
	// valueSkip means an invalid token was consumed and reported.
	valueSkip
	// valueEnd means the input ended.
	valueEnd
)

// Parser holds the cursor over the token sequence of one compilation unit.
type Parser struct {
	tokens []m.Token
	pos    int
	diags  m.Diagnostics
}

// New creates a parser over tokens.
func New(tokens []m.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a whole compilation unit.
func Parse(tokens []m.Token, filename string) (*m.SyntaxTree, m.Diagnostics) {
	p := New(tokens)
	tree := p.Parse()
	tree.Filename = filename

	slog.Debug("parsed unit", "file", filename, "forms", len(tree.Nodes), "diagnostics", len(p.diags))

	return tree, p.diags
}

// Parse parses top-level forms until the tokens are exhausted.
func (p *Parser) Parse() *m.SyntaxTree {
	tree := &m.SyntaxTree{}

	for {
		tok, ok := p.next()
		if !ok {
			break
		}

		if tok.Kind != m.BracketOpen {
			p.errorAt(tok, msgExpectedOpen, "try encapsulating this section with []")
			continue
		}

		node, ok := p.form(true)
		if ok {
			tree.Add(node)
		}
	}

	return tree
}

// Diagnostics returns the diagnostics recorded so far.
func (p *Parser) Diagnostics() m.Diagnostics {
	return p.diags
}

// form parses what follows an opening bracket. At the top level an empty
// form and a call with nothing produce no node.
func (p *Parser) form(top bool) (*m.SyntaxNode, bool) {
	tok, ok := p.next()
	if !ok {
		p.errorAtEnd(msgUnexpectedEnd, "add function call")
		return m.NewNode(m.NodeError), !top
	}

	switch tok.Kind {
	case m.BracketOpen:
		callee, _ := p.form(false)
		return p.call(callee), true
	case m.BracketClose:
		return m.NewNode(m.NodeNothing), !top
	case m.IdentFunction:
		return p.call(m.NewTokenNode(m.NodeIdentifier, tok)), true
	case m.KeywordDef:
		return p.def(), true
	case m.KeywordSet:
		return p.set(), true
	case m.KeywordStruct:
		p.errorAt(tok, msgUnsupported, "struct definitions are not supported yet")
		p.skip(0)

		return m.NewNode(m.NodeError), true
	case m.KeywordSign:
		p.errorAt(tok, msgUnsupported, "signatures are not supported yet")
		p.skip(0)

		return m.NewNode(m.NodeError), true
	case m.OperatorNothing:
		p.warnAt(tok, msgCallNothing, helpCallNothing)
		return p.skip(0), !top
	default:
		p.errorAt(tok, msgExpectedForm, helpExpectedValue)
		p.skip(0)

		return m.NewNode(m.NodeError), true
	}
}

// call parses the arguments of a function call up to its closing bracket.
func (p *Parser) call(callee *m.SyntaxNode) *m.SyntaxNode {
	node := m.NewNode(m.NodeFunctionCall)
	node.Add(callee)

	for !p.done() {
		value, result := p.value()

		switch result {
		case valueNode:
			node.Add(value)
		case valueClose, valueEnd:
			return node
		case valueSkip:
		}
	}

	p.errorAtEnd(msgExpectedClose, helpAddClose)

	return node
}

// def parses `[def [params...] body]` after the keyword.
func (p *Parser) def() *m.SyntaxNode {
	tok, ok := p.next()
	if !ok {
		p.errorAtEnd("expected function definition", "consider adding function parameters and its body")
		return m.NewNode(m.NodeError)
	}

	if tok.Kind != m.BracketOpen {
		p.errorAt(tok, "expected function parameters", "if you don't want any parameters use []")

		if tok.Kind != m.BracketClose {
			p.skip(0)
		}

		return m.NewNode(m.NodeError)
	}

	node := m.NewNode(m.NodeFunctionDefinition)
	if !p.parameters(node) {
		return node
	}

	body, result := p.value()

	switch result {
	case valueEnd:
		return node
	case valueClose:
		p.errorAt(p.previous(), "expected function body", "add a single expression after the parameters")
		return node
	case valueNode:
		node.Add(body)
	case valueSkip:
	}

	p.close()

	return node
}

// parameters parses the parameter list up to and including its closing
// bracket. It returns false when the input ended.
func (p *Parser) parameters(node *m.SyntaxNode) bool {
	for {
		tok, ok := p.next()
		if !ok {
			p.errorAtEnd(msgExpectedClose, "close the parameter list")
			return false
		}

		switch tok.Kind {
		case m.BracketClose:
			return true
		case m.IdentParameter:
			node.Add(m.NewTokenNode(m.NodeIdentifier, tok))
		case m.OperatorNothing:
			node.Add(m.NewNode(m.NodeNothing))
		case m.BracketOpen:
			p.errorAt(tok, "expected function parameter", "you cannot use keywords or [ as function parameters")
			p.skip(0)
		default:
			p.errorAt(tok, "expected function parameter", "you cannot use keywords or [ as function parameters")
		}
	}
}

// set parses `[set name value]` after the keyword.
func (p *Parser) set() *m.SyntaxNode {
	tok, ok := p.next()
	if !ok {
		p.errorAtEnd(msgUnexpectedEnd, "add a variable name")
		return m.NewNode(m.NodeError)
	}

	if tok.Kind != m.IdentVariable {
		p.errorAt(tok, "expected variable identifier", "don't use keyword or [ or ]")

		switch tok.Kind {
		case m.BracketClose:
			p.errorAt(tok, "expected value before ]", "try adding here a value")
		case m.BracketOpen:
			p.skip(1)
		default:
			p.skip(0)
		}

		return m.NewNode(m.NodeError)
	}

	value, result := p.value()

	switch result {
	case valueEnd:
		return m.NewNode(m.NodeError)
	case valueClose:
		p.warnAt(tok, "variable is nothing", "if this is intentional set it to _")

		node := m.NewTokenNode(m.NodeVariableSetter, tok)
		node.Add(m.NewNode(m.NodeNothing))

		if !p.flagUntilClose() {
			return m.NewNode(m.NodeError)
		}

		return node
	case valueSkip:
		p.close()
		return m.NewNode(m.NodeError)
	}

	kind := m.NodeVariableSetter
	if value.Kind == m.NodeFunctionDefinition {
		kind = m.NodeFunctionSetter
	}

	node := m.NewTokenNode(kind, tok)
	node.Add(value)

	p.close()

	return node
}

// value parses a single argument.
func (p *Parser) value() (*m.SyntaxNode, valueResult) {
	tok, ok := p.next()
	if !ok {
		p.errorAtEnd(msgUnexpectedEnd, "add here a value")
		return nil, valueEnd
	}

	switch tok.Kind {
	case m.BracketOpen:
		node, _ := p.form(false)
		return node, valueNode
	case m.BracketClose:
		return nil, valueClose
	case m.IdentVariable:
		return m.NewTokenNode(m.NodeIdentifier, tok), valueNode
	case m.LiteralInteger:
		return m.NewTokenNode(m.NodeValueInteger, tok), valueNode
	case m.LiteralFloat:
		return m.NewTokenNode(m.NodeValueFloat, tok), valueNode
	case m.LiteralChar:
		return m.NewTokenNode(m.NodeValueChar, tok), valueNode
	case m.LiteralString:
		return m.NewTokenNode(m.NodeValueString, tok), valueNode
	case m.LiteralBool:
		return m.NewTokenNode(m.NodeValueBool, tok), valueNode
	case m.OperatorNothing:
		return m.NewNode(m.NodeNothing), valueNode
	default:
		p.errorAt(tok, msgExpectedValue, helpExpectedValue)
		return nil, valueSkip
	}
}

// close consumes tokens up to the closing bracket of a form whose single
// statement was already parsed. Every extra token is reported; a nested
// bracket group is reported once and skipped as a whole.
func (p *Parser) close() {
	for {
		tok, ok := p.next()
		if !ok {
			p.errorAtEnd(msgExpectedClose, helpCloseBody)
			return
		}

		switch tok.Kind {
		case m.BracketClose:
			return
		case m.BracketOpen:
			p.errorAt(tok, msgExpectedClose, msgSingleBody)
			p.skip(0)
		default:
			p.errorAt(tok, msgExpectedClose, msgSingleBody)
		}
	}
}

// flagUntilClose reports every token up to the next ] without balancing
// nested brackets. It returns false when the input ended first.
func (p *Parser) flagUntilClose() bool {
	for {
		tok, ok := p.next()
		if !ok {
			p.errorAtEnd(msgExpectedClose, helpCloseBody)
			return false
		}

		if tok.Kind == m.BracketClose {
			return true
		}

		p.errorAt(tok, msgExpectedClose, msgSingleBody)
	}
}

// skip discards tokens until the closing bracket that balances the current
// form. nest is the number of brackets already opened past that form.
func (p *Parser) skip(nest int) *m.SyntaxNode {
	for {
		tok, ok := p.next()
		if !ok {
			p.errorAtEnd(msgExpectedClose, helpAddClose)
			return m.NewNode(m.NodeNothing)
		}

		switch tok.Kind {
		case m.BracketOpen:
			nest++
		case m.BracketClose:
			if nest == 0 {
				return m.NewNode(m.NodeNothing)
			}

			nest--
		}
	}
}

func (p *Parser) next() (m.Token, bool) {
	if p.done() {
		return m.Token{}, false
	}

	tok := p.tokens[p.pos]
	p.pos++

	return tok, true
}

func (p *Parser) done() bool {
	return p.pos >= len(p.tokens)
}

// previous returns the most recently consumed token.
func (p *Parser) previous() m.Token {
	if p.pos == 0 {
		return m.Token{}
	}

	return p.tokens[p.pos-1]
}

func (p *Parser) errorAt(tok m.Token, message, help string) {
	p.diags.Add(m.TokenDiagnostic(m.LevelError, tok, message, help))
}

func (p *Parser) warnAt(tok m.Token, message, help string) {
	p.diags.Add(m.TokenDiagnostic(m.LevelWarning, tok, message, help))
}

// errorAtEnd reports a problem with the end of input at the last token.
func (p *Parser) errorAtEnd(message, help string) {
	var last m.Token
	if len(p.tokens) > 0 {
		last = p.tokens[len(p.tokens)-1]
	}

	p.diags.Add(m.Diagnostic{
		Level:    m.LevelError,
		Position: last.Position,
		Text:     "end of input",
		Message:  message,
		Help:     help,
	})
}
