package fs

import (
	"io/fs"
	"path/filepath"
	"sort"

	"go.trai.ch/zerr"
)

// Walker enumerates the files of a source tree that pass an exclusion filter.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Collect returns the sorted root-relative slash paths of every file under
// root that the filter includes. An excluded directory is not descended into;
// the result is the same as filtering every descendant individually because
// the filter also tests ancestor directories.
func (w *Walker) Collect(root string, filter *Filter) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if !filter.Include(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if filter.Include(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to walk source tree"), "root", root)
	}

	sort.Strings(files)
	return files, nil
}
