// Package fern runs the compiler front end for one compilation unit:
// tokenize, parse with recovery, canonicalize, and infer types. Every stage
// is total; failures surface as diagnostics on the result, never as errors.
package fern

import (
	"github.com/sanity-io/litter"

	"github.com/fernlang/fern/can"
	"github.com/fernlang/fern/diag"
	"github.com/fernlang/fern/format"
	"github.com/fernlang/fern/lexer"
	"github.com/fernlang/fern/parser"
	"github.com/fernlang/fern/types"
)

const Version = "0.1.0"

// UnitResult captures every stage's output for one unit. Diags holds the
// union of parse, canonicalize, and inference diagnostics in report order.
type UnitResult struct {
	Source []byte
	Tokens []lexer.Token
	Root   parser.Node
	IR     can.Node
	Types  types.Result
	Diags  []diag.Diagnostic
}

// RunUnit pushes src through the whole pipeline. It always returns a complete
// result: a unit that fails to parse still carries its tokens, a malformed
// root, the empty IR, and an empty type assignment.
func RunUnit(src []byte) UnitResult {
	toks := lexer.Tokenize(src)
	root, diags := parser.ParseTokens(src, toks)
	ir, canDiags := can.Canonicalize(root)
	res, typeDiags := types.Infer(ir)
	diags = append(diags, canDiags...)
	diags = append(diags, typeDiags...)
	return UnitResult{
		Source: src,
		Tokens: toks,
		Root:   root,
		IR:     ir,
		Types:  res,
		Diags:  diags,
	}
}

// Formatted renders the unit's canonical source text.
func (r UnitResult) Formatted() string {
	return format.Node(r.Root)
}

// HasErrors reports whether any stage produced an error-severity diagnostic.
func (r UnitResult) HasErrors() bool {
	for _, d := range r.Diags {
		if d.Severity == diag.SeverityError {
			return true
		}
	}
	return false
}

var dumper = litter.Options{HidePrivateFields: false, Compact: true}

// DumpTree renders a CST or IR value for debugging output.
func DumpTree(v any) string {
	return dumper.Sdump(v)
}
