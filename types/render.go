package types

import (
	"fmt"
	"strings"
)

// RenderSection produces the TYPES snapshot section: one entry per top-level
// statement in source order, or the structured empty block when inference had
// nothing to assign.
func RenderSection(r Result) string {
	if len(r.Defs) == 0 && len(r.Exprs) == 0 {
		return "(inferred-types (defs) (expressions))"
	}
	var lines []string
	for _, def := range r.Defs {
		lines = append(lines, fmt.Sprintf("(def @%s (name %q) (type %q))",
			def.Span.Dotted(), def.Name, Render(def.Type)))
	}
	for _, expr := range r.Exprs {
		lines = append(lines, fmt.Sprintf("(expr @%s (type %q))",
			expr.Span.Dotted(), Render(expr.Type)))
	}
	return strings.Join(lines, "\n")
}
