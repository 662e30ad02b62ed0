// Package diag holds the diagnostic values accumulated by every pipeline
// stage. Stages never abort on malformed input; they collect diagnostics and
// keep going, and callers render the collected list after the fact.
package diag

import (
	"cmp"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/fernlang/fern/lexer"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "UNKNOWN"
	}
}

// Category is the stable uppercase label a diagnostic renders under. The
// exact strings are part of the snapshot interface.
type Category string

const (
	ParseError        Category = "PARSE ERROR"
	UndefinedVariable Category = "UNDEFINED VARIABLE"
	TypeMismatch      Category = "TYPE MISMATCH"
)

type Diagnostic struct {
	Severity Severity
	Category Category
	// Code is the stable machine-readable reason, e.g.
	// "expected_expr_close_round_or_comma". Empty for categories that do not
	// carry one.
	Code    string
	Message string
	Span    lexer.Span
}

// Sort orders diagnostics by source position, then category, so rendering is
// deterministic regardless of which stage reported first.
func Sort(ds []Diagnostic) {
	slices.SortStableFunc(ds, func(a, b Diagnostic) int {
		if c := cmp.Compare(a.Span.Start.Offset, b.Span.Start.Offset); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
}

// Render produces one PROBLEMS block: the category label, the message, and,
// for parse errors, the offending source line with a caret under the column.
func Render(src []byte, d Diagnostic) string {
	var b strings.Builder
	b.WriteString(string(d.Category))
	b.WriteByte('\n')
	b.WriteString(d.Message)
	if d.Category == ParseError {
		line := sourceLine(src, d.Span.Start.Line)
		prefix := fmt.Sprintf("%d | ", d.Span.Start.Line)
		b.WriteByte('\n')
		b.WriteString(prefix)
		b.WriteString(line)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", len(prefix)+d.Span.Start.Column-1))
		b.WriteByte('^')
	}
	return b.String()
}

// RenderAll renders the PROBLEMS section: the sentinel "NIL" when the list is
// empty, otherwise one block per diagnostic separated by blank lines.
func RenderAll(src []byte, ds []Diagnostic) string {
	if len(ds) == 0 {
		return "NIL"
	}
	sorted := slices.Clone(ds)
	Sort(sorted)
	blocks := make([]string, len(sorted))
	for i, d := range sorted {
		blocks[i] = Render(src, d)
	}
	return strings.Join(blocks, "\n\n")
}

func sourceLine(src []byte, line int) string {
	cur := 1
	start := 0
	for i, b := range src {
		if cur == line {
			start = i
			break
		}
		if b == '\n' {
			cur++
			start = i + 1
		}
	}
	if cur < line {
		return ""
	}
	end := len(src)
	for i := start; i < len(src); i++ {
		if src[i] == '\n' {
			end = i
			break
		}
	}
	return string(src[start:end])
}
