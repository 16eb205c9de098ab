// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// IsHidden reports whether a file or directory name is hidden (dot-prefixed).
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// FindFiles recursively searches the given root path for all regular files,
// skipping hidden files and directories below the root. Paths are returned in
// lexical order, which makes every walk over unchanged input identical.
func FindFiles(rootPath string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != rootPath && IsHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// FindFilesByExtension returns the files found by FindFiles whose name ends
// with the given extension.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	all, err := FindFiles(rootPath)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, f := range all {
		if strings.HasSuffix(f, extension) {
			files = append(files, f)
		}
	}
	return files, nil
}
