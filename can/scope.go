package can

import "github.com/fernlang/fern/lexer"

// Binding is one binding site: a top-level definition or a lambda parameter.
// IDs are unique within a canonicalization run, so "x#0" and "x#1" are
// distinct bindings even when the names collide.
type Binding struct {
	Name string
	ID   BindID
	Span lexer.Span
}

// Scope is one frame of the lexical scope stack. Frames keep their bindings
// in declaration order; lookup scans the innermost frame first and, within a
// frame, the most recent binding first, so later bindings shadow earlier ones.
type Scope struct {
	parent   *Scope
	bindings []Binding
}

// Child pushes a new frame on top of s.
func (s *Scope) Child() *Scope {
	return &Scope{parent: s}
}

func (s *Scope) add(b Binding) {
	s.bindings = append(s.bindings, b)
}

// Lookup resolves name against the scope stack, innermost first.
func (s *Scope) Lookup(name string) (Binding, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		for i := len(sc.bindings) - 1; i >= 0; i-- {
			if sc.bindings[i].Name == name {
				return sc.bindings[i], true
			}
		}
	}
	return Binding{}, false
}
