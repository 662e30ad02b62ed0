package snapshot

import "github.com/fernlang/fern/vwrite"

// WriteFile encodes the record and writes it to path through the vectored
// backend, one buffer per section.
func (r Record) WriteFile(path string) error {
	sections, err := r.encodeSections()
	if err != nil {
		return err
	}
	return vwrite.WriteFile(path, sections)
}
