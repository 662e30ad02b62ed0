package format_test

import (
	"strings"
	"testing"

	"github.com/kr/pretty"

	"github.com/fernlang/fern/format"
	"github.com/fernlang/fern/parser"
)

func formatSrc(src string) string {
	root, _ := parser.Parse([]byte(src))
	return format.Node(root)
}

func TestFormat(t *testing.T) {
	run := func(src, expected string) {
		t.Run(src, func(t *testing.T) {
			if got := formatSrc(src); got != expected {
				pretty.Ldiff(t, expected, got)
				t.Fail()
			}
		})
	}
	run("0", "0")
	run("1-2", "1 - 2")
	run("1+2*3", "1 + 2 * 3")
	run("-1", "-1")
	run("( 1 )", "(1)")
	run("(1,2)", "(1, 2)")
	run("(1,)", "(1,)")
	run("( 1 ,)", "(1,)")
	run("()", "()")
	run("f( 1,2 )", "f(1, 2)")
	run("\\x   y ->  x", "\\x y -> x")
	run("x=1", "x = 1")
	run("x = 1\n\n\nx", "x = 1\nx")
}

// Malformed regions reproduce their raw source text.
func TestFormatMalformed(t *testing.T) {
	src := "((1#\n)Q a:t\nn)"
	if got := formatSrc(src); got != src {
		t.Errorf("malformed source changed: %q -> %q", src, got)
	}
}

// shape is an s-expression with spans erased, for comparing tree structure
// across re-parses. Sources under test must not contain opaque names, whose
// rendered text also carries "@".
func shape(n parser.Node) string {
	sx := n.SExpr()
	var b strings.Builder
	skip := false
	for _, r := range sx {
		if r == '@' {
			skip = true
			continue
		}
		if skip {
			if r != ' ' && r != ')' {
				continue
			}
			skip = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Re-parsing formatted output must yield an isomorphic tree: same node kinds,
// same nesting, same meaning. A one-element tuple must stay a tuple.
func TestFormatReparseIsomorphic(t *testing.T) {
	sources := []string{
		"0", "1-2", "-1", "(1)", "(1,)", "((1,),)", "(1, 2)", "()",
		"f(1)", "f(1, 2)", "\\x -> (x,)", "x = (1,)\nx",
	}
	for _, src := range sources {
		root, _ := parser.Parse([]byte(src))
		formatted := format.Node(root)
		again, diags := parser.Parse([]byte(formatted))
		if len(diags) != 0 {
			t.Errorf("re-parse of %q (formatted %q) produced diagnostics: %# v",
				src, formatted, pretty.Formatter(diags))
			continue
		}
		if shape(root) != shape(again) {
			t.Errorf("re-parse of %q changed the tree:\n%s\n%s", formatted, shape(root), shape(again))
		}
	}
}

// Formatting already-canonical text reproduces it unchanged, and formatting
// is a fixed point after one pass.
func TestFormatIdempotent(t *testing.T) {
	sources := []string{
		"0", "1-2", "1 -2", "(1,2,)", "f(1)(2)", "\\x y -> x + y",
		"x = (1, Q)\nx", "- 1", "((1#\n)Q a:t\nn)",
	}
	for _, src := range sources {
		once := formatSrc(src)
		twice := formatSrc(once)
		if once != twice {
			t.Errorf("format not idempotent for %q: %q -> %q", src, once, twice)
		}
	}
}
