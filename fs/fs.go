// Package fs provides file-based output artifacts: CSV and JSON snapshots of
// a crawl state, image URL lists, and output file naming.
//
// Writers rewrite the whole artifact on every flush and replace the previous
// file atomically, so the on-disk output is always internally consistent.
package fs

import (
	"io"
	"os"
	"path/filepath"
)

// writeFileAtomic writes through a sibling temp file and renames it into
// place. A crash mid-write leaves the previous artifact untouched.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}
