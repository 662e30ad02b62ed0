// Package snapshot reads and writes the golden record format: one compilation
// unit captured at every pipeline stage as ordered fenced sections. Records
// must round-trip byte-for-byte; section names, sentinels, and diagnostic
// labels are a stable interface.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/samber/lo"

	"github.com/fernlang/fern"
	"github.com/fernlang/fern/can"
	"github.com/fernlang/fern/diag"
	"github.com/fernlang/fern/lexer"
	"github.com/fernlang/fern/types"
)

const (
	fence = "~~~"

	// NoChange is the FORMATTED sentinel for units already in canonical form.
	NoChange = "NO CHANGE"
)

var (
	ErrMalformedRecord = errors.New("snapshot: malformed record")
	ErrUnknownSection  = errors.New("snapshot: unknown section")
	ErrMissingSection  = errors.New("snapshot: missing section")
)

// Meta is the record's key-value header, encoded as YAML.
type Meta struct {
	Description string `yaml:"description"`
	Kind        string `yaml:"kind"`
}

// Record is one golden record. All sections are stored pre-rendered so Encode
// is a pure concatenation and Load/Encode round-trips exactly.
type Record struct {
	Meta         Meta
	Source       string
	Problems     string
	Tokens       string
	Parse        string
	Formatted    string
	Canonicalize string
	Types        string
}

// sectionNames fixes the on-disk order.
var sectionNames = []string{
	"META", "SOURCE", "PROBLEMS", "TOKENS", "PARSE", "FORMATTED", "CANONICALIZE", "TYPES",
}

// Generate runs the full pipeline on source and renders every section.
func Generate(meta Meta, source string) (Record, error) {
	src := []byte(source)
	unit := fern.RunUnit(src)
	formatted := unit.Formatted()
	if formatted == source {
		formatted = NoChange
	}
	return Record{
		Meta:         meta,
		Source:       source,
		Problems:     diag.RenderAll(src, unit.Diags),
		Tokens:       renderTokens(unit.Tokens),
		Parse:        unit.Root.SExpr(),
		Formatted:    formatted,
		Canonicalize: can.Render(unit.IR),
		Types:        types.RenderSection(unit.Types),
	}, nil
}

func renderTokens(toks []lexer.Token) string {
	return strings.Join(lo.Map(toks, func(tok lexer.Token, _ int) string {
		return tok.String()
	}), ", ")
}

// Encode renders the record as fenced sections in fixed order.
func (r Record) Encode() ([]byte, error) {
	sections, err := r.encodeSections()
	if err != nil {
		return nil, err
	}
	return bytes.Join(sections, nil), nil
}

// encodeSections renders one byte slice per fenced section, so writers can
// hand the record to the vectored backend without re-slicing.
func (r Record) encodeSections() ([][]byte, error) {
	metaBody, err := yaml.Marshal(r.Meta)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode meta: %w", err)
	}
	sections := make([][]byte, len(sectionNames))
	for i, name := range sectionNames {
		var buf bytes.Buffer
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(fence)
		buf.WriteString(name)
		buf.WriteByte('\n')
		buf.WriteString(r.section(name, strings.TrimRight(string(metaBody), "\n")))
		buf.WriteByte('\n')
		buf.WriteString(fence)
		buf.WriteByte('\n')
		sections[i] = buf.Bytes()
	}
	return sections, nil
}

func (r Record) section(name, metaBody string) string {
	switch name {
	case "META":
		return metaBody
	case "SOURCE":
		return r.Source
	case "PROBLEMS":
		return r.Problems
	case "TOKENS":
		return r.Tokens
	case "PARSE":
		return r.Parse
	case "FORMATTED":
		return r.Formatted
	case "CANONICALIZE":
		return r.Canonicalize
	case "TYPES":
		return r.Types
	}
	panic("snapshot: unknown section " + name)
}

// Load parses an encoded record. Every section must be present, fenced, and
// in any order; unknown section names are an error.
func Load(data []byte) (Record, error) {
	sections, err := splitSections(data)
	if err != nil {
		return Record{}, err
	}
	var rec Record
	for _, name := range sectionNames {
		body, ok := sections[name]
		if !ok {
			return Record{}, fmt.Errorf("%w: %s", ErrMissingSection, name)
		}
		switch name {
		case "META":
			if err := yaml.Unmarshal([]byte(body), &rec.Meta); err != nil {
				return Record{}, fmt.Errorf("snapshot: decode meta: %w", err)
			}
		case "SOURCE":
			rec.Source = body
		case "PROBLEMS":
			rec.Problems = body
		case "TOKENS":
			rec.Tokens = body
		case "PARSE":
			rec.Parse = body
		case "FORMATTED":
			rec.Formatted = body
		case "CANONICALIZE":
			rec.Canonicalize = body
		case "TYPES":
			rec.Types = body
		}
	}
	return rec, nil
}

func splitSections(data []byte) (map[string]string, error) {
	known := lo.SliceToMap(sectionNames, func(name string) (string, bool) { return name, true })
	sections := map[string]string{}
	lines := strings.Split(string(data), "\n")
	i := 0
	for i < len(lines) {
		line := lines[i]
		if line == "" {
			i++
			continue
		}
		if !strings.HasPrefix(line, fence) {
			return nil, fmt.Errorf("%w: expected section fence, got %q", ErrMalformedRecord, line)
		}
		name := line[len(fence):]
		if !known[name] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSection, name)
		}
		i++
		var body []string
		for {
			if i >= len(lines) {
				return nil, fmt.Errorf("%w: unterminated section %s", ErrMalformedRecord, name)
			}
			if lines[i] == fence {
				i++
				break
			}
			body = append(body, lines[i])
			i++
		}
		sections[name] = strings.Join(body, "\n")
	}
	return sections, nil
}
