// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index builds the file index for a project's component tree and
// resolves include references against it.
//
// The index trades a global uniqueness requirement for convenience: include
// directives may name a bare filename and the index locates it anywhere in
// the component tree. Two components sharing a basename anywhere under the
// root therefore fail index construction outright, whether or not either is
// ever referenced.
package index

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Index maps a bare filename to the absolute path of the component with
// that name. Rebuilt fresh on every command invocation; never cached.
type Index map[string]string

// DuplicateError reports two components sharing a basename.
type DuplicateError struct {
	Name  string
	PathA string
	PathB string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate component filename %q: %s and %s", e.Name, e.PathA, e.PathB)
}

// NotFoundError reports a bare include reference absent from the index.
type NotFoundError struct {
	Ref string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("component %q not found in any subdirectory", e.Ref)
}

// Build walks root recursively and returns a filename-to-absolute-path
// index. A nonexistent root yields an empty index, matching the zero-match
// semantics of the walk; a basename collision is a hard error naming both
// offending paths.
func Build(root string) (Index, error) {
	idx := make(Index)

	if _, err := os.Stat(root); os.IsNotExist(err) {
		return idx, nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		name := d.Name()
		if prev, ok := idx[name]; ok {
			return &DuplicateError{Name: name, PathA: prev, PathB: abs}
		}
		idx[name] = abs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// Resolve turns an include reference into an absolute path. References
// containing a path separator are joined against root directly, keeping
// explicit-path includes working regardless of the index. Bare references
// are looked up in idx; a nil idx falls back to joining against root.
func Resolve(ref, root string, idx Index) (string, error) {
	if strings.ContainsRune(ref, '/') || strings.ContainsRune(ref, os.PathSeparator) {
		return filepath.Abs(filepath.Join(root, filepath.FromSlash(ref)))
	}
	if idx == nil {
		return filepath.Abs(filepath.Join(root, ref))
	}
	path, ok := idx[ref]
	if !ok {
		return "", &NotFoundError{Ref: ref}
	}
	return path, nil
}
