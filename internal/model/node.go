package model

// NodeKind represents the type of a syntax tree node.
type NodeKind int

const (
	// NodeError marks a form that failed to parse.
	NodeError NodeKind = iota
	NodeFunctionCall
	NodeIdentifier
	NodeNothing
	NodeValueInteger
	NodeValueFloat
	NodeValueChar
	NodeValueString
	NodeValueBool
	NodeFunctionDefinition
	NodeVariableSetter
	NodeFunctionSetter
)

var nodeKindNames = map[NodeKind]string{
	NodeError:              "ERROR",
	NodeFunctionCall:       "FUNCTION_CALL",
	NodeIdentifier:         "IDENTIFIER",
	NodeNothing:            "NOTHING",
	NodeValueInteger:       "VALUE_INTEGER",
	NodeValueFloat:         "VALUE_FLOAT",
	NodeValueChar:          "VALUE_CHAR",
	NodeValueString:        "VALUE_STRING",
	NodeValueBool:          "VALUE_BOOL",
	NodeFunctionDefinition: "FUNCTION_DEFINITION",
	NodeVariableSetter:     "VARIABLE_SETTER",
	NodeFunctionSetter:     "FUNCTION_SETTER",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}

	return "OTHER"
}

// SyntaxNode is a node of the syntax tree. Token is set for identifier,
// value and setter nodes and nil otherwise. Children are owned by the node.
type SyntaxNode struct {
	Kind     NodeKind
	Token    *Token
	Children []*SyntaxNode
}

// NewNode creates a node without a token.
func NewNode(kind NodeKind) *SyntaxNode {
	return &SyntaxNode{Kind: kind}
}

// NewTokenNode creates a node that takes ownership of the token.
func NewTokenNode(kind NodeKind, token Token) *SyntaxNode {
	return &SyntaxNode{Kind: kind, Token: &token}
}

// Add appends a child node.
func (n *SyntaxNode) Add(child *SyntaxNode) {
	n.Children = append(n.Children, child)
}

// Walk calls fn for the node and all of its descendants in pre-order with
// the depth of each node (the receiver has depth 0).
func (n *SyntaxNode) Walk(fn func(node *SyntaxNode, depth int)) {
	n.walk(fn, 0)
}

func (n *SyntaxNode) walk(fn func(node *SyntaxNode, depth int), depth int) {
	fn(n, depth)

	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// SyntaxTree is the ordered list of top-level forms of one compilation unit.
type SyntaxTree struct {
	Nodes    []*SyntaxNode
	Filename string
}

// Add appends a top-level node.
func (t *SyntaxTree) Add(node *SyntaxNode) {
	t.Nodes = append(t.Nodes, node)
}

// Count returns the total number of nodes in the tree.
func (t *SyntaxTree) Count() int {
	count := 0

	for _, node := range t.Nodes {
		node.Walk(func(*SyntaxNode, int) { count++ })
	}

	return count
}
