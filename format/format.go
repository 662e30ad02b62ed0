// Package format re-renders a concrete syntax tree as canonical source text.
// Formatting is a pure tree walk: it is idempotent, never produces
// diagnostics, and re-parsing its output yields an isomorphic tree.
package format

import (
	"fmt"
	"strings"

	"github.com/fernlang/fern/parser"
)

// Node renders a CST node as canonical source. Operator applications get
// single spaces around the operator, tuple and call elements a single space
// after each comma. Malformed nodes reproduce the raw source text they cover.
func Node(n parser.Node) string {
	switch n := n.(type) {
	case parser.IntLit:
		return n.Tok.Text
	case parser.VarRef:
		return n.Tok.Text
	case parser.TagRef:
		return n.Tok.Text
	case parser.OpaqueRef:
		return n.Tok.Text
	case parser.UnaryOp:
		return n.Op.Text + Node(n.Operand)
	case parser.BinaryOp:
		return Node(n.Left) + " " + n.Op.Text + " " + Node(n.Right)
	case parser.Call:
		return Node(n.Fn) + "(" + joined(n.Args) + ")"
	case parser.Tuple:
		// A one-element tuple keeps its trailing comma so it does not
		// re-parse as a grouping paren.
		if len(n.Elems) == 1 {
			return "(" + Node(n.Elems[0]) + ",)"
		}
		return "(" + joined(n.Elems) + ")"
	case parser.Paren:
		return "(" + Node(n.Inner) + ")"
	case parser.Lambda:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Text
		}
		return "\\" + strings.Join(params, " ") + " -> " + Node(n.Body)
	case parser.Def:
		return n.Name.Text + " = " + Node(n.Body)
	case parser.Unit:
		stmts := make([]string, len(n.Stmts))
		for i, stmt := range n.Stmts {
			stmts[i] = Node(stmt)
		}
		return strings.Join(stmts, "\n")
	case parser.Malformed:
		return n.Raw
	}
	panic(fmt.Sprintf("format: unhandled node type %T", n))
}

func joined(elems []parser.Node) string {
	parts := make([]string, len(elems))
	for i, elem := range elems {
		parts[i] = Node(elem)
	}
	return strings.Join(parts, ", ")
}
