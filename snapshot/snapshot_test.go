package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func loadFixture(t *testing.T, name string) ([]byte, Record) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	assert.NoError(t, err)
	rec, err := Load(data)
	assert.NoError(t, err)
	return data, rec
}

var fixtures = []string{
	"literal.snap",
	"binop_minus.snap",
	"undefined_var.snap",
	"parse_recovery.snap",
}

// Load followed by Encode must reproduce the file byte for byte.
func TestRoundTrip(t *testing.T) {
	for _, name := range fixtures {
		t.Run(name, func(t *testing.T) {
			data, rec := loadFixture(t, name)
			encoded, err := rec.Encode()
			assert.NoError(t, err)
			assert.Equal(t, string(data), string(encoded))
		})
	}
}

// Re-deriving every section from SOURCE must match the stored sections.
func TestRegenerateMatchesFixtures(t *testing.T) {
	for _, name := range fixtures {
		t.Run(name, func(t *testing.T) {
			_, rec := loadFixture(t, name)
			regen, err := Generate(rec.Meta, rec.Source)
			assert.NoError(t, err)
			assert.Equal(t, rec, regen)
		})
	}
}

func TestGenerateLiteral(t *testing.T) {
	rec, err := Generate(Meta{Description: "integer literal", Kind: "expr"}, "0")
	assert.NoError(t, err)
	assert.Equal(t, "NIL", rec.Problems)
	assert.Equal(t, "Int(1:1-1:2), EndOfFile(1:2-1:2)", rec.Tokens)
	assert.Equal(t, `(e-int @1.1-1.2 (raw "0"))`, rec.Parse)
	assert.Equal(t, NoChange, rec.Formatted)
	assert.Equal(t, `(e-int @1.1-1.2 (value "0"))`, rec.Canonicalize)
	assert.Equal(t, `(expr @1.1-1.2 (type "Num(*)"))`, rec.Types)
}

func TestGenerateNormalizesSpacing(t *testing.T) {
	rec, err := Generate(Meta{Kind: "expr"}, "1-2")
	assert.NoError(t, err)
	assert.Equal(t, "1 - 2", rec.Formatted)
}

func TestWriteFileRoundTrip(t *testing.T) {
	_, rec := loadFixture(t, "literal.snap")
	path := filepath.Join(t.TempDir(), "literal.snap")
	assert.NoError(t, rec.WriteFile(path))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	loaded, err := Load(data)
	assert.NoError(t, err)
	assert.Equal(t, rec, loaded)
}

func TestLoadRejectsUnknownSection(t *testing.T) {
	_, err := Load([]byte("~~~BOGUS\nx\n~~~\n"))
	assert.True(t, errors.Is(err, ErrUnknownSection))
}

func TestLoadRejectsMissingSection(t *testing.T) {
	_, err := Load([]byte("~~~META\nkind: expr\n~~~\n"))
	assert.True(t, errors.Is(err, ErrMissingSection))
}

func TestLoadRejectsUnterminatedSection(t *testing.T) {
	_, err := Load([]byte("~~~META\nkind: expr\n"))
	assert.True(t, errors.Is(err, ErrMalformedRecord))
}
