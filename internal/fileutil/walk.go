package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ListFilePaths walks root and returns the sorted, slash-separated relative
// paths of all regular files, skipping any entry for which exclude returns
// true. Excluded directories are not descended into. A missing root yields
// an empty list, not an error.
func ListFilePaths(root string, exclude func(relPath string, isDir bool) bool) ([]string, error) {
	paths := make([]string, 0)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if exclude != nil && exclude(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}
