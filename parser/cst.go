package parser

import (
	"fmt"
	"strings"

	"github.com/fernlang/fern/lexer"
)

// Node is a concrete syntax tree node. The CST preserves everything the
// parser could recover, including malformed fragments; parents own their
// children outright and spans are assigned once at parse time.
type Node interface {
	Span() lexer.Span
	SExpr() string
}

var (
	_ Node = IntLit{}
	_ Node = VarRef{}
	_ Node = TagRef{}
	_ Node = OpaqueRef{}
	_ Node = UnaryOp{}
	_ Node = BinaryOp{}
	_ Node = Call{}
	_ Node = Tuple{}
	_ Node = Paren{}
	_ Node = Lambda{}
	_ Node = Def{}
	_ Node = Unit{}
	_ Node = Malformed{}
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

type IntLit struct {
	Tok lexer.Token
}

func (n IntLit) Span() lexer.Span { return n.Tok.Span }
func (n IntLit) SExpr() string {
	return sx("e-int", n.Tok.Span, fmt.Sprintf("(raw %q)", n.Tok.Text))
}

type VarRef struct {
	Tok lexer.Token
}

func (n VarRef) Span() lexer.Span { return n.Tok.Span }
func (n VarRef) SExpr() string {
	return sx("e-var", n.Tok.Span, fmt.Sprintf("(name %q)", n.Tok.Text))
}

type TagRef struct {
	Tok lexer.Token
}

func (n TagRef) Span() lexer.Span { return n.Tok.Span }
func (n TagRef) SExpr() string {
	return sx("e-tag", n.Tok.Span, fmt.Sprintf("(name %q)", n.Tok.Text))
}

type OpaqueRef struct {
	Tok lexer.Token
}

func (n OpaqueRef) Span() lexer.Span { return n.Tok.Span }
func (n OpaqueRef) SExpr() string {
	return sx("e-opaque", n.Tok.Span, fmt.Sprintf("(name %q)", n.Tok.Text))
}

type UnaryOp struct {
	Op      lexer.Token
	Operand Node
}

func (n UnaryOp) Span() lexer.Span { return n.Op.Span.Add(n.Operand.Span()) }
func (n UnaryOp) SExpr() string {
	return sx("e-unary", n.Span(), fmt.Sprintf("(op %q)", n.Op.Text), n.Operand.SExpr())
}

type BinaryOp struct {
	Left  Node
	Op    lexer.Token
	Right Node
}

func (n BinaryOp) Span() lexer.Span { return n.Left.Span().Add(n.Right.Span()) }
func (n BinaryOp) SExpr() string {
	return sx("e-binop", n.Span(), fmt.Sprintf("(op %q)", n.Op.Text), n.Left.SExpr(), n.Right.SExpr())
}

type Call struct {
	Fn   Node
	Args []Node
	span lexer.Span
}

func (n Call) Span() lexer.Span { return n.span }
func (n Call) SExpr() string {
	parts := []string{n.Fn.SExpr()}
	for _, arg := range n.Args {
		parts = append(parts, arg.SExpr())
	}
	return sx("e-call", n.span, parts...)
}

type Tuple struct {
	Elems []Node
	span  lexer.Span
}

func (n Tuple) Span() lexer.Span { return n.span }
func (n Tuple) SExpr() string {
	parts := make([]string, len(n.Elems))
	for i, elem := range n.Elems {
		parts[i] = elem.SExpr()
	}
	return sx("e-tuple", n.span, parts...)
}

type Paren struct {
	Inner Node
	span  lexer.Span
}

func (n Paren) Span() lexer.Span { return n.span }
func (n Paren) SExpr() string {
	return sx("e-paren", n.span, n.Inner.SExpr())
}

type Lambda struct {
	Backslash lexer.Token
	Params    []lexer.Token
	Body      Node
}

func (n Lambda) Span() lexer.Span { return n.Backslash.Span.Add(n.Body.Span()) }
func (n Lambda) SExpr() string {
	args := make([]string, len(n.Params))
	for i, param := range n.Params {
		args[i] = fmt.Sprintf("%q", param.Text)
	}
	return sx("e-lambda", n.Span(), "(args "+strings.Join(args, " ")+")", n.Body.SExpr())
}

type Def struct {
	Name lexer.Token
	Body Node
}

func (n Def) Span() lexer.Span { return n.Name.Span.Add(n.Body.Span()) }
func (n Def) SExpr() string {
	return sx("s-def", n.Span(), fmt.Sprintf("(name %q)", n.Name.Text), n.Body.SExpr())
}

// Unit is the root node for sources with multiple statements or any
// definition. A source holding a single bare expression parses to that
// expression directly.
type Unit struct {
	Stmts []Node
	span  lexer.Span
}

func (n Unit) Span() lexer.Span { return n.span }
func (n Unit) SExpr() string {
	parts := make([]string, len(n.Stmts))
	for i, stmt := range n.Stmts {
		parts[i] = stmt.SExpr()
	}
	return sx("unit", n.span, parts...)
}

// Malformed stands in for a region that could not be parsed. Reason is one of
// the stable recovery codes; Raw preserves the covered source text so the
// formatter can reproduce it.
type Malformed struct {
	Reason string
	Raw    string
	span   lexer.Span
}

func (n Malformed) Span() lexer.Span { return n.span }
func (n Malformed) SExpr() string {
	return sx("e-malformed", n.span, fmt.Sprintf("(reason %q)", n.Reason))
}

func isMalformed(n Node) bool {
	_, ok := n.(Malformed)
	return ok
}
