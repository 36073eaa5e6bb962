// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/manuscript-engine/internal/index"
)

// Expand reads the component at path and returns its fully flattened text.
// Non-directive lines pass through byte-identical, terminators included.
// An include-directive line is replaced by the recursively expanded text of
// the referenced component. chain tracks the active branch for cycle
// detection; pass nil for the outermost call.
//
// Any failure (unreadable file, unresolvable reference, cycle) aborts the
// whole expansion; there is no partial output.
func Expand(path, root string, idx index.Index, chain *Chain) (string, error) {
	if chain == nil {
		chain = NewChain()
	}
	if err := chain.Push(path); err != nil {
		return "", err
	}
	defer chain.Pop()

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("reading component %s: %w", path, err)
	}
	defer f.Close()

	var out strings.Builder
	r := bufio.NewReader(f)
	for {
		line, readErr := r.ReadString('\n')
		if line != "" {
			if err := expandLine(&out, line, root, idx, chain); err != nil {
				return "", err
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", fmt.Errorf("reading component %s: %w", path, readErr)
		}
	}
	return out.String(), nil
}

func expandLine(out *strings.Builder, line, root string, idx index.Index, chain *Chain) error {
	kind, ref := classifyLine(line)
	// Sentinels have no meaning outside the wrapper's top level; they pass
	// through as literal text here.
	if kind != lineInclude {
		out.WriteString(line)
		return nil
	}

	target, err := index.Resolve(ref, root, idx)
	if err != nil {
		return err
	}
	expanded, err := Expand(target, root, idx, chain)
	if err != nil {
		return err
	}
	out.WriteString(expanded)
	return nil
}
