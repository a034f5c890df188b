package runtime

// Scope maps names to values. Lookups fall back to the parent scope.
type Scope struct {
	vars   map[string]Value
	parent *Scope
}

// NewScope creates a scope nested in parent, which may be nil.
func NewScope(parent *Scope) *Scope {
	return &Scope{vars: make(map[string]Value), parent: parent}
}

// Lookup finds name in the scope chain.
func (s *Scope) Lookup(name string) (Value, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if v, ok := scope.vars[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// Define binds name in this scope, shadowing outer bindings.
func (s *Scope) Define(name string, v Value) {
	s.vars[name] = v
}
