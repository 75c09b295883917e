// Package scan enumerates the input dataset: one subdirectory per class,
// each containing the data files eligible for splitting.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ClassDir identifies one labeled class directory.
type ClassDir struct {
	// Name is the class label (the directory's base name)
	Name string

	// Path is the absolute path to the class directory
	Path string
}

// FileEntry is a single eligible data file within a class directory.
type FileEntry struct {
	// Path is the absolute path to the file
	Path string

	// RelPath is the path relative to the class directory
	RelPath string
}

// Name returns the file's base name.
func (f FileEntry) Name() string {
	return filepath.Base(f.Path)
}

// ListClassDirs returns the immediate subdirectories of root, sorted by
// name. Plain files at the top level are ignored.
func ListClassDirs(root string) ([]ClassDir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve input directory: %w", err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	classes := make([]ClassDir, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		classes = append(classes, ClassDir{
			Name: entry.Name(),
			Path: filepath.Join(abs, entry.Name()),
		})
	}
	return classes, nil
}

// ListFiles walks a class directory recursively and returns every file
// whose extension is in the allow-list. Extension matching is
// case-insensitive. The result is sorted by relative path so enumeration
// order never depends on readdir order.
func ListFiles(classDir string, exts []string) ([]FileEntry, error) {
	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		allowed[strings.ToLower(ext)] = true
	}

	var files []FileEntry
	err := filepath.WalkDir(classDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !allowed[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, err := filepath.Rel(classDir, path)
		if err != nil {
			return err
		}
		files = append(files, FileEntry{Path: path, RelPath: rel})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files in %q: %w", classDir, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
	return files, nil
}
