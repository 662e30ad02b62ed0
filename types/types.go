// Package types infers one type per canonical-IR expression using
// Hindley-Milner style unification with numeric-literal polymorphism. All
// state (substitution, environment) is local to one inference run.
package types

import "strings"

// Type is a tagged variant. Types are produced fresh per inference run and
// never shared across runs.
type Type interface {
	isType()
	String() string
}

var (
	_ Type = Var{}
	_ Type = Num{}
	_ Type = Func{}
	_ Type = Tuple{}
	_ Type = Con{}
	_ Type = Error{}
)

// Var is a type variable. Unbound variables render as "*".
type Var struct {
	ID int
}

func (Var) isType()          {}
func (v Var) String() string { return "*" }

// Num is the deferred-resolution numeric family: an integer literal has type
// Num(*) until use constrains its representation.
type Num struct {
	Elem Type
}

func (Num) isType()          {}
func (n Num) String() string { return "Num(" + n.Elem.String() + ")" }

type Func struct {
	Params []Type
	Ret    Type
}

func (Func) isType() {}
func (f Func) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	if len(f.Params) == 1 {
		if _, nested := f.Params[0].(Func); !nested {
			return params[0] + " -> " + f.Ret.String()
		}
	}
	return "(" + strings.Join(params, ", ") + ") -> " + f.Ret.String()
}

type Tuple struct {
	Elems []Type
}

func (Tuple) isType() {}
func (t Tuple) String() string {
	elems := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = e.String()
	}
	return "(" + strings.Join(elems, ", ") + ")"
}

// Con is a concrete nominal type, e.g. a tag name.
type Con struct {
	Name string
}

func (Con) isType()          {}
func (c Con) String() string { return c.Name }

// Error is the distinguished error type. It unifies with anything, so a
// single unresolved node does not cascade failures through its siblings.
type Error struct{}

func (Error) isType()        {}
func (Error) String() string { return "Error" }

func isError(t Type) bool {
	_, ok := t.(Error)
	return ok
}

// Render prints a type for the TYPES snapshot section.
func Render(t Type) string {
	return t.String()
}
