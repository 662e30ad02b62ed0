package parser_test

import (
	"testing"

	"github.com/kr/pretty"
	"golang.org/x/exp/slices"

	"github.com/fernlang/fern/diag"
	. "github.com/fernlang/fern/parser"
)

func codes(diags []diag.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestParseTrees(t *testing.T) {
	run := func(name, src, expected string) {
		t.Run(name, func(t *testing.T) {
			root, diags := Parse([]byte(src))
			if len(diags) != 0 {
				t.Errorf("unexpected diagnostics: %# v", pretty.Formatter(diags))
			}
			if got := root.SExpr(); got != expected {
				pretty.Ldiff(t, expected, got)
				t.Fail()
			}
		})
	}
	run("literal", "0",
		`(e-int @1.1-1.2 (raw "0"))`)
	run("binary minus", "1-2",
		`(e-binop @1.1-1.4 (op "-") (e-int @1.1-1.2 (raw "1")) (e-int @1.3-1.4 (raw "2")))`)
	run("precedence", "1+2*3",
		`(e-binop @1.1-1.6 (op "+") (e-int @1.1-1.2 (raw "1")) (e-binop @1.3-1.6 (op "*") (e-int @1.3-1.4 (raw "2")) (e-int @1.5-1.6 (raw "3"))))`)
	run("left associative", "1-2-3",
		`(e-binop @1.1-1.6 (op "-") (e-binop @1.1-1.4 (op "-") (e-int @1.1-1.2 (raw "1")) (e-int @1.3-1.4 (raw "2"))) (e-int @1.5-1.6 (raw "3")))`)
	run("unary minus", "-1",
		`(e-unary @1.1-1.3 (op "-") (e-int @1.2-1.3 (raw "1")))`)
	run("paren", "(1)",
		`(e-paren @1.1-1.4 (e-int @1.2-1.3 (raw "1")))`)
	run("unit tuple", "()",
		`(e-tuple @1.1-1.3)`)
	run("tuple", "(1, 2)",
		`(e-tuple @1.1-1.7 (e-int @1.2-1.3 (raw "1")) (e-int @1.5-1.6 (raw "2")))`)
	run("trailing comma tuple", "(1,)",
		`(e-tuple @1.1-1.5 (e-int @1.2-1.3 (raw "1")))`)
	run("call", "f(1)",
		`(e-call @1.1-1.5 (e-var @1.1-1.2 (name "f")) (e-int @1.3-1.4 (raw "1")))`)
	run("call with tuple args", "f(1, 2)",
		`(e-call @1.1-1.8 (e-var @1.1-1.2 (name "f")) (e-int @1.3-1.4 (raw "1")) (e-int @1.6-1.7 (raw "2")))`)
	run("tag", "Q",
		`(e-tag @1.1-1.2 (name "Q"))`)
	run("opaque", "@q",
		`(e-opaque @1.1-1.3 (name "@q"))`)
	run("lambda", `\x y -> x`,
		`(e-lambda @1.1-1.10 (args "x" "y") (e-var @1.9-1.10 (name "x")))`)
	run("single def is a unit", "x = 1",
		`(unit @1.1-1.6 (s-def @1.1-1.6 (name "x") (e-int @1.5-1.6 (raw "1"))))`)
	run("def then expression", "x = 1\nx",
		`(unit @1.1-2.2 (s-def @1.1-1.6 (name "x") (e-int @1.5-1.6 (raw "1"))) (e-var @2.1-2.2 (name "x")))`)
	run("newlines inside group", "(1,\n 2)",
		`(e-tuple @1.1-2.4 (e-int @1.2-1.3 (raw "1")) (e-int @2.2-2.3 (raw "2")))`)
}

func TestParseRecovery(t *testing.T) {
	run := func(name, src, expectedRoot string, expectedCodes ...string) {
		t.Run(name, func(t *testing.T) {
			root, diags := Parse([]byte(src))
			if got := root.SExpr(); got != expectedRoot {
				pretty.Ldiff(t, expectedRoot, got)
				t.Fail()
			}
			if got := codes(diags); !slices.Equal(got, expectedCodes) {
				pretty.Ldiff(t, expectedCodes, got)
				t.Fail()
			}
		})
	}
	run("empty input", "",
		`(e-malformed @1.1-1.1 (reason "expected_expr"))`,
		"expected_expr")
	run("missing rhs", "1 +",
		`(e-binop @1.1-1.4 (op "+") (e-int @1.1-1.2 (raw "1")) (e-malformed @1.4-1.4 (reason "expected_expr")))`,
		"expected_expr")
	run("unclosed group", "(",
		`(e-malformed @1.1-1.2 (reason "expected_expr"))`,
		"expected_expr")
	run("garbage in group", "(1 # 2)",
		`(e-malformed @1.1-1.8 (reason "expected_expr_close_round_or_comma"))`,
		"expected_expr_close_round_or_comma")
	run("lambda without args", `\ -> 1`,
		`(e-malformed @1.1-1.7 (reason "expected_lambda_arg"))`,
		"expected_lambda_arg")
	run("lambda without arrow", `\x 1`,
		`(e-malformed @1.1-1.5 (reason "expected_arrow_after_lambda_args"))`,
		"expected_arrow_after_lambda_args")
	run("def without body", "x =",
		`(e-malformed @1.1-1.2 (reason "expected_expr_after_assign"))`,
		"expected_expr_after_assign")
	run("nested unbalanced groups report once", "((1#\n)Q a:t\nn)",
		`(e-malformed @1.1-3.3 (reason "expected_expr_close_round_or_comma"))`,
		"expected_expr_close_round_or_comma")
	run("one diagnostic per statement", "1 +\n# #",
		`(unit @1.1-2.4 (e-binop @1.1-1.4 (op "+") (e-int @1.1-1.2 (raw "1")) (e-malformed @1.4-1.4 (reason "expected_expr"))) (e-malformed @2.1-2.1 (reason "expected_expr")) (e-malformed @2.1-2.4 (reason "expr_unexpected_token")))`,
		"expected_expr", "expected_expr")
}

// The same source must yield byte-identical trees and codes on every run.
func TestParseDeterminism(t *testing.T) {
	sources := []string{"0", "1-2", "((1#\n)Q a:t\nn)", `\x -> x(1, -2)`, "x =\ny = 1"}
	for _, src := range sources {
		first, firstDiags := Parse([]byte(src))
		for i := 0; i < 3; i++ {
			again, againDiags := Parse([]byte(src))
			if first.SExpr() != again.SExpr() {
				t.Errorf("Parse(%q) tree not deterministic", src)
			}
			if !slices.Equal(codes(firstDiags), codes(againDiags)) {
				t.Errorf("Parse(%q) diagnostics not deterministic", src)
			}
		}
	}
}

// Parsing never panics, whatever the input.
func TestParseTotality(t *testing.T) {
	for _, src := range []string{"", ")", "(((", "\xff#@!", "\\", "= = =", ",,,", "\n\n"} {
		root, _ := Parse([]byte(src))
		if root == nil {
			t.Errorf("Parse(%q) returned nil root", src)
		}
	}
}
