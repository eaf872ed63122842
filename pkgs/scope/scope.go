// Package scope implements the interpreter's lexical environments:
// map-backed symbol tables linked through parent pointers into a chain
// that always terminates at the persistent root scope.
package scope

import "github.com/aledsdavies/wisp/pkgs/value"

// Scope is a map from symbol name to Value handle, plus an optional
// parent. Every Scope ultimately chains back to a persistent root Scope
// holding the built-in registry.
type Scope struct {
	vars   map[string]value.Handle
	parent *Scope
}

// New creates a Scope with no parent (only the root Scope should be
// constructed this way).
func New() *Scope {
	return &Scope{vars: make(map[string]value.Handle)}
}

// Child creates a fresh Scope whose parent is the receiver.
func (s *Scope) Child() *Scope {
	return &Scope{vars: make(map[string]value.Handle), parent: s}
}

// Lookup walks self then each parent in turn; the first hit wins.
func (s *Scope) Lookup(name string) (value.Handle, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if h, ok := cur.vars[name]; ok {
			return h, true
		}
	}
	return value.NilHandle, false
}

// Bind sets name in this Scope only, shadowing any parent binding.
func (s *Scope) Bind(name string, h value.Handle) {
	s.vars[name] = h
}

// Unbind removes name from the chain starting at self, returning the
// removed handle if one existed. Calling Unbind twice in a row for the
// same name is a no-op on the second call (ns-unmap idempotence).
func (s *Scope) Unbind(name string) (value.Handle, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if h, ok := cur.vars[name]; ok {
			delete(cur.vars, name)
			return h, true
		}
	}
	return value.NilHandle, false
}

// Names returns every name bound anywhere in the chain, nearest scope
// first, used by pkgs/suggest to offer "did you mean" hints.
func (s *Scope) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for cur := s; cur != nil; cur = cur.parent {
		for name := range cur.vars {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// Parent returns the enclosing Scope, or nil for the root.
func (s *Scope) Parent() *Scope { return s.parent }
