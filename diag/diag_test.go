package diag_test

import (
	"testing"

	"github.com/kr/pretty"

	. "github.com/fernlang/fern/diag"
	"github.com/fernlang/fern/lexer"
)

func at(offset, line, col int) lexer.Span {
	pos := lexer.Pos{Offset: offset, Line: line, Column: col}
	return lexer.Span{Start: pos, End: lexer.Pos{Offset: offset + 1, Line: line, Column: col + 1}}
}

func TestRenderAllEmptyIsNIL(t *testing.T) {
	if got := RenderAll([]byte("0"), nil); got != "NIL" {
		t.Errorf("expected NIL, got %q", got)
	}
}

func TestRenderParseErrorCaret(t *testing.T) {
	src := []byte("((1#\n)Q a:t\nn)")
	d := Diagnostic{
		Severity: SeverityError,
		Category: ParseError,
		Code:     "expected_expr_close_round_or_comma",
		Message:  "I was expecting a closing parenthesis or a comma here.",
		Span:     at(3, 1, 4),
	}
	expected := "PARSE ERROR\n" +
		"I was expecting a closing parenthesis or a comma here.\n" +
		"1 | ((1#\n" +
		"       ^"
	if got := Render(src, d); got != expected {
		pretty.Ldiff(t, expected, got)
		t.Fail()
	}
}

func TestRenderNonParseErrorHasNoExcerpt(t *testing.T) {
	src := []byte("iffy")
	d := Diagnostic{
		Category: UndefinedVariable,
		Message:  "Nothing is named `iffy` in this scope.\nIs there an import or exposing missing up-top?",
		Span:     at(0, 1, 1),
	}
	expected := "UNDEFINED VARIABLE\n" +
		"Nothing is named `iffy` in this scope.\n" +
		"Is there an import or exposing missing up-top?"
	if got := Render(src, d); got != expected {
		pretty.Ldiff(t, expected, got)
		t.Fail()
	}
}

func TestSortByOffsetThenCategory(t *testing.T) {
	ds := []Diagnostic{
		{Category: UndefinedVariable, Span: at(5, 1, 6)},
		{Category: TypeMismatch, Span: at(0, 1, 1)},
		{Category: ParseError, Span: at(5, 1, 6)},
	}
	Sort(ds)
	got := []Category{ds[0].Category, ds[1].Category, ds[2].Category}
	expected := []Category{TypeMismatch, ParseError, UndefinedVariable}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("order[%d] = %s, want %s", i, got[i], expected[i])
			break
		}
	}
}

func TestRenderAllSeparatesBlocks(t *testing.T) {
	src := []byte("a b")
	ds := []Diagnostic{
		{Category: UndefinedVariable, Message: "Nothing is named `b` in this scope.", Span: at(2, 1, 3)},
		{Category: UndefinedVariable, Message: "Nothing is named `a` in this scope.", Span: at(0, 1, 1)},
	}
	expected := "UNDEFINED VARIABLE\n" +
		"Nothing is named `a` in this scope.\n\n" +
		"UNDEFINED VARIABLE\n" +
		"Nothing is named `b` in this scope."
	if got := RenderAll(src, ds); got != expected {
		pretty.Ldiff(t, expected, got)
		t.Fail()
	}
}
