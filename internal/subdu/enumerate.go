package subdu

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// ListSubdirs returns the absolute paths of the immediate children of root
// that are directories, in lexical order. Children are checked with Stat, so
// symlinks pointing at directories are included. An empty root is not found.
func ListSubdirs(fsys afero.Fs, root string) ([]string, error) {
	if root == "" {
		return nil, fmt.Errorf("accessing path %q: %w: %w", root, ErrNotFound, fs.ErrNotExist)
	}

	root = filepath.Clean(root)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	info, err := fsys.Stat(absRoot)
	if err != nil {
		return nil, classify(root, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path %q: %w", root, ErrNotDirectory)
	}

	entries, err := afero.ReadDir(fsys, absRoot)
	if err != nil {
		return nil, classify(root, err)
	}

	dirs := make([]string, 0, len(entries))

	for _, entry := range entries {
		path := filepath.Join(absRoot, entry.Name())

		if !entry.IsDir() {
			if entry.Mode()&fs.ModeSymlink == 0 {
				continue
			}

			target, err := fsys.Stat(path)
			if err != nil || !target.IsDir() {
				continue
			}
		}

		dirs = append(dirs, path)
	}

	return dirs, nil
}

// classify maps a filesystem error on root to one of the package sentinels.
func classify(root string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("accessing path %q: %w: %w", root, ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("listing path %q: %w: %w", root, ErrPermission, err)
	default:
		return fmt.Errorf("accessing path %q: %w", root, err)
	}
}
