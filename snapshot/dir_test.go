package snapshot

import (
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"github.com/alecthomas/assert/v2"
)

func TestLoadDir(t *testing.T) {
	literal, err := os.ReadFile("testdata/literal.snap")
	assert.NoError(t, err)
	minus, err := os.ReadFile("testdata/binop_minus.snap")
	assert.NoError(t, err)

	fsys := fstest.MapFS{
		"suite/literal.snap":     &fstest.MapFile{Data: literal},
		"suite/sub/minus.snap":   &fstest.MapFile{Data: minus},
		"suite/notes.md":         &fstest.MapFile{Data: []byte("ignored")},
		"elsewhere/literal.snap": &fstest.MapFile{Data: literal},
	}
	records, err := LoadDir(fsys, "suite")
	assert.NoError(t, err)
	assert.Equal(t, []string{"suite/literal.snap", "suite/sub/minus.snap"}, Paths(records))
	assert.Equal(t, "0", records["suite/literal.snap"].Source)
	assert.Equal(t, "1-2", records["suite/sub/minus.snap"].Source)
}

func TestLoadDirFailsOnBrokenRecord(t *testing.T) {
	fsys := fstest.MapFS{
		"suite/bad.snap": &fstest.MapFile{Data: []byte("~~~BOGUS\nx\n~~~\n")},
	}
	_, err := LoadDir(fsys, "suite")
	assert.True(t, errors.Is(err, ErrUnknownSection))
}
