package snapshot

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
)

// Ext is the golden record file extension.
const Ext = ".snap"

// LoadDir loads every record under root of fsys, keyed by path. Suites keep
// one record per compilation unit; a single unreadable record fails the whole
// load so a broken suite is never half-processed.
func LoadDir(fsys fs.FS, root string) (map[string]Record, error) {
	records := map[string]Record{}
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != Ext {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		rec, err := Load(data)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		records[p] = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Paths returns the record keys in stable order.
func Paths(records map[string]Record) []string {
	paths := make([]string, 0, len(records))
	for p := range records {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
