// Package can resolves identifiers against lexical scope and lowers the CST
// to canonical IR. Resolution failures are local: an unresolvable reference
// becomes a runtime-error node and siblings are still canonicalized.
package can

import (
	"fmt"
	"strings"

	"github.com/fernlang/fern/lexer"
)

// BindID identifies one binding site within a single canonicalization run.
type BindID int

// Node is a canonical-IR node. Spans are carried over from the CST and never
// recomputed.
type Node interface {
	Span() lexer.Span
	SExpr() string
}

var (
	_ Node = (*Int)(nil)
	_ Node = (*Lookup)(nil)
	_ Node = (*Tag)(nil)
	_ Node = (*Opaque)(nil)
	_ Node = (*Unary)(nil)
	_ Node = (*Binop)(nil)
	_ Node = (*Call)(nil)
	_ Node = (*Tuple)(nil)
	_ Node = (*Lambda)(nil)
	_ Node = (*Def)(nil)
	_ Node = (*Unit)(nil)
	_ Node = (*RuntimeError)(nil)
	_ Node = (*Empty)(nil)
)

func sx(tag string, span lexer.Span, parts ...string) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(tag)
	b.WriteString(" @")
	b.WriteString(span.Dotted())
	for _, part := range parts {
		b.WriteByte(' ')
		b.WriteString(part)
	}
	b.WriteByte(')')
	return b.String()
}

func bindRef(name string, id BindID) string {
	return fmt.Sprintf("(bind %q)", fmt.Sprintf("%s#%d", name, id))
}

type Int struct {
	span  lexer.Span
	Value string
}

func (n *Int) Span() lexer.Span { return n.span }
func (n *Int) SExpr() string    { return sx("e-int", n.span, fmt.Sprintf("(value %q)", n.Value)) }

// Lookup is an identifier reference resolved to its binding site.
type Lookup struct {
	span lexer.Span
	Name string
	Bind BindID
}

func (n *Lookup) Span() lexer.Span { return n.span }
func (n *Lookup) SExpr() string    { return sx("e-lookup", n.span, bindRef(n.Name, n.Bind)) }

type Tag struct {
	span lexer.Span
	Name string
}

func (n *Tag) Span() lexer.Span { return n.span }
func (n *Tag) SExpr() string    { return sx("e-tag", n.span, fmt.Sprintf("(name %q)", n.Name)) }

type Opaque struct {
	span lexer.Span
	Name string
}

func (n *Opaque) Span() lexer.Span { return n.span }
func (n *Opaque) SExpr() string    { return sx("e-opaque", n.span, fmt.Sprintf("(name %q)", n.Name)) }

type Unary struct {
	span    lexer.Span
	Op      string
	Operand Node
}

func (n *Unary) Span() lexer.Span { return n.span }
func (n *Unary) SExpr() string {
	return sx("e-unary", n.span, fmt.Sprintf("(op %q)", n.Op), n.Operand.SExpr())
}

type Binop struct {
	span  lexer.Span
	Op    string
	Left  Node
	Right Node
}

func (n *Binop) Span() lexer.Span { return n.span }
func (n *Binop) SExpr() string {
	return sx("e-binop", n.span, fmt.Sprintf("(op %q)", n.Op), n.Left.SExpr(), n.Right.SExpr())
}

type Call struct {
	span lexer.Span
	Fn   Node
	Args []Node
}

func (n *Call) Span() lexer.Span { return n.span }
func (n *Call) SExpr() string {
	parts := []string{n.Fn.SExpr()}
	for _, arg := range n.Args {
		parts = append(parts, arg.SExpr())
	}
	return sx("e-call", n.span, parts...)
}

type Tuple struct {
	span  lexer.Span
	Elems []Node
}

func (n *Tuple) Span() lexer.Span { return n.span }
func (n *Tuple) SExpr() string {
	parts := make([]string, len(n.Elems))
	for i, elem := range n.Elems {
		parts[i] = elem.SExpr()
	}
	return sx("e-tuple", n.span, parts...)
}

// Pattern is a lambda parameter binding site.
type Pattern struct {
	span lexer.Span
	Name string
	Bind BindID
}

func (n *Pattern) Span() lexer.Span { return n.span }
func (n *Pattern) SExpr() string    { return sx("p-ident", n.span, bindRef(n.Name, n.Bind)) }

type Lambda struct {
	span   lexer.Span
	Params []*Pattern
	Body   Node
}

func (n *Lambda) Span() lexer.Span { return n.span }
func (n *Lambda) SExpr() string {
	args := make([]string, len(n.Params))
	for i, param := range n.Params {
		args[i] = param.SExpr()
	}
	return sx("e-lambda", n.span, "(args "+strings.Join(args, " ")+")", n.Body.SExpr())
}

type Def struct {
	span lexer.Span
	Name string
	Bind BindID
	Body Node
}

func (n *Def) Span() lexer.Span { return n.span }
func (n *Def) SExpr() string {
	return sx("d-def", n.span, bindRef(n.Name, n.Bind), n.Body.SExpr())
}

type Unit struct {
	span  lexer.Span
	Stmts []Node
}

func (n *Unit) Span() lexer.Span { return n.span }
func (n *Unit) SExpr() string {
	parts := make([]string, len(n.Stmts))
	for i, stmt := range n.Stmts {
		parts[i] = stmt.SExpr()
	}
	return strings.Join(parts, "\n")
}

// RuntimeError stands in for a construct that is syntactically present but
// semantically unresolved: an out-of-scope identifier, or a malformed CST
// region carried through (Tag is then the parser's reason code).
type RuntimeError struct {
	span lexer.Span
	Tag  string
}

func (n *RuntimeError) Span() lexer.Span { return n.span }
func (n *RuntimeError) SExpr() string {
	return sx("e-runtime-error", n.span, fmt.Sprintf("(tag %q)", n.Tag))
}

// Empty is the distinguished unit for a CST with no canonicalizable content,
// e.g. a whole-program parse failure. It is a different terminal state from a
// runtime-error and renders as (can-ir (empty true)).
type Empty struct{}

func (n *Empty) Span() lexer.Span { return lexer.Span{} }
func (n *Empty) SExpr() string    { return "(can-ir (empty true))" }

// Render produces the CANONICALIZE section for a root IR node.
func Render(root Node) string {
	return root.SExpr()
}
