package can

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/fernlang/fern/diag"
	"github.com/fernlang/fern/lexer"
	"github.com/fernlang/fern/parser"
)

// Canonical operation names for the surface operators.
var opNames = map[lexer.TokenType]string{
	lexer.OpPlus:        "add",
	lexer.OpBinaryMinus: "sub",
	lexer.OpStar:        "mul",
	lexer.OpSlash:       "div",
	lexer.OpUnaryMinus:  "neg",
}

const notInScopeTag = "ident_not_in_scope"

type canonicalizer struct {
	nextBind BindID
	diags    []diag.Diagnostic
}

// Canonicalize lowers a CST to canonical IR. The result is total: every CST
// yields exactly one IR root. A root that holds no canonicalizable content at
// all (a whole-program parse failure) lowers to the distinguished Empty node;
// anything smaller that fails to resolve becomes a RuntimeError node in place
// while the rest of the tree is still lowered.
func Canonicalize(root parser.Node) (Node, []diag.Diagnostic) {
	c := &canonicalizer{}
	switch root := root.(type) {
	case parser.Malformed:
		return &Empty{}, c.diags
	case parser.Unit:
		return c.unit(root), c.diags
	default:
		return c.expr(&Scope{}, root), c.diags
	}
}

func (c *canonicalizer) bind(scope *Scope, tok lexer.Token) Binding {
	b := Binding{Name: tok.Text, ID: c.nextBind, Span: tok.Span}
	c.nextBind++
	scope.add(b)
	return b
}

// unit lowers a multi-statement root. All top-level definitions are bound
// before any body is lowered, so definitions may refer to each other and to
// themselves regardless of order.
func (c *canonicalizer) unit(u parser.Unit) Node {
	scope := &Scope{}
	binds := map[int]Binding{}
	for i, stmt := range u.Stmts {
		if def, ok := stmt.(parser.Def); ok {
			binds[i] = c.bind(scope, def.Name)
		}
	}
	stmts := lo.Map(u.Stmts, func(stmt parser.Node, i int) Node {
		if def, ok := stmt.(parser.Def); ok {
			return &Def{
				span: def.Span(),
				Name: def.Name.Text,
				Bind: binds[i].ID,
				Body: c.expr(scope, def.Body),
			}
		}
		return c.expr(scope, stmt)
	})
	return &Unit{span: u.Span(), Stmts: stmts}
}

func (c *canonicalizer) expr(scope *Scope, n parser.Node) Node {
	switch n := n.(type) {
	case parser.IntLit:
		return &Int{span: n.Span(), Value: n.Tok.Text}
	case parser.VarRef:
		return c.lookup(scope, n)
	case parser.TagRef:
		return &Tag{span: n.Span(), Name: n.Tok.Text}
	case parser.OpaqueRef:
		return &Opaque{span: n.Span(), Name: n.Tok.Text}
	case parser.UnaryOp:
		return &Unary{span: n.Span(), Op: opNames[n.Op.Type], Operand: c.expr(scope, n.Operand)}
	case parser.BinaryOp:
		return &Binop{
			span:  n.Span(),
			Op:    opNames[n.Op.Type],
			Left:  c.expr(scope, n.Left),
			Right: c.expr(scope, n.Right),
		}
	case parser.Call:
		return &Call{
			span: n.Span(),
			Fn:   c.expr(scope, n.Fn),
			Args: lo.Map(n.Args, func(arg parser.Node, _ int) Node { return c.expr(scope, arg) }),
		}
	case parser.Tuple:
		return &Tuple{
			span:  n.Span(),
			Elems: lo.Map(n.Elems, func(elem parser.Node, _ int) Node { return c.expr(scope, elem) }),
		}
	case parser.Paren:
		// Grouping parens carry no meaning of their own.
		return c.expr(scope, n.Inner)
	case parser.Lambda:
		inner := scope.Child()
		params := lo.Map(n.Params, func(tok lexer.Token, _ int) *Pattern {
			b := c.bind(inner, tok)
			return &Pattern{span: tok.Span, Name: b.Name, Bind: b.ID}
		})
		return &Lambda{span: n.Span(), Params: params, Body: c.expr(inner, n.Body)}
	case parser.Malformed:
		// The parse failure was already reported; carry the reason through.
		return &RuntimeError{span: n.Span(), Tag: n.Reason}
	}
	panic(fmt.Sprintf("can: unhandled node type %T", n))
}

func (c *canonicalizer) lookup(scope *Scope, ref parser.VarRef) Node {
	if b, ok := scope.Lookup(ref.Tok.Text); ok {
		return &Lookup{span: ref.Span(), Name: b.Name, Bind: b.ID}
	}
	c.diags = append(c.diags, diag.Diagnostic{
		Severity: diag.SeverityError,
		Category: diag.UndefinedVariable,
		Code:     notInScopeTag,
		Message: fmt.Sprintf("Nothing is named `%s` in this scope.\n"+
			"Is there an import or exposing missing up-top?", ref.Tok.Text),
		Span: ref.Span(),
	})
	return &RuntimeError{span: ref.Span(), Tag: notInScopeTag}
}
