// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SizeLimit caps the byte size of a component sent to the API in a single
// exchange. Multi-input actions get three times this budget for the whole
// message.
const SizeLimit = 30000

// ReadComponent loads a component by its handle (path relative to the
// components folder). When the handle does not name a file, similar
// components are suggested; by default the best suggestion is used
// automatically with a note on warn, while exact mode turns a miss into an
// error listing the suggestions. The returned handle is the one actually
// read.
func ReadComponent(folder, handle string, exact bool, warn io.Writer) (string, string, error) {
	path := filepath.Join(folder, filepath.FromSlash(handle))

	if !isFile(path) {
		suggestions := Suggestions(folder, handle, 5)
		fmt.Fprintf(warn, "component not found: %s\n", handle)

		switch {
		case len(suggestions) > 0 && !exact:
			fmt.Fprintf(warn, "using: %s\n", suggestions[0])
			if len(suggestions) > 1 {
				fmt.Fprintf(warn, "  (other options: %s)\n", strings.Join(suggestions[1:], ", "))
			}
			handle = suggestions[0]
			path = filepath.Join(folder, filepath.FromSlash(handle))
		case len(suggestions) > 0:
			return "", "", fmt.Errorf("component %q not found; did you mean: %s", handle, strings.Join(suggestions, ", "))
		default:
			return "", "", fmt.Errorf("component %q not found", handle)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", "", fmt.Errorf("reading component %s: %w", path, err)
	}
	if info.Size() > SizeLimit {
		return "", "", fmt.Errorf("component %s is too large (%d bytes; limit is %d bytes)", path, info.Size(), SizeLimit)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading component %s: %w", path, err)
	}
	return handle, string(data), nil
}

// Overwrite replaces the component at path with revised text, reporting
// the size change. The agent rewrites components in place; composing
// afterwards picks the new text up because nothing is cached.
func Overwrite(path, revised string, out io.Writer) error {
	var oldSize int64
	if info, err := os.Stat(path); err == nil {
		oldSize = info.Size()
	}
	newSize := int64(len(revised))

	if err := os.WriteFile(path, []byte(revised), 0o644); err != nil {
		return fmt.Errorf("writing component %s: %w", path, err)
	}

	fmt.Fprintf(out, "wrote new content to %s\n", path)
	fmt.Fprintf(out, "previous file size: %d bytes\n", oldSize)
	fmt.Fprintf(out, "new file size: %d bytes (%s)\n", newSize, sizeTrend(oldSize, newSize))
	return nil
}

func sizeTrend(oldSize, newSize int64) string {
	switch {
	case newSize > oldSize:
		return "increased"
	case newSize < oldSize:
		return "decreased"
	default:
		return "unchanged"
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
