// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrEmptyExtension is returned by FindFilesByExtension for an empty
// extension, which would match every file.
var ErrEmptyExtension = errors.New("extension must not be empty")

// FindFilesByExtension recursively searches root for regular files whose
// name ends with extension. Paths are returned in lexical walk order.
// Hidden directories (a name starting with '.') below root are skipped.
func FindFilesByExtension(root, extension string) ([]string, error) {
	if extension == "" {
		return nil, ErrEmptyExtension
	}

	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
