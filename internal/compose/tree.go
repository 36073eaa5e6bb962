// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/manuscript-engine/internal/index"
)

// Node is one component in the include tree rooted at a project's root
// component.
type Node struct {
	// Name is the include reference as written in the parent.
	Name string

	// Path is the resolved absolute path.
	Path string

	// Children are the directly included components, in document order.
	Children []Node
}

// BuildTree walks the include graph from path and returns the direct
// children of each component without expanding any text. The same chain
// guard as Expand applies, so a cyclic tree fails rather than recursing
// forever.
func BuildTree(path, root string, idx index.Index, chain *Chain) ([]Node, error) {
	if chain == nil {
		chain = NewChain()
	}
	if err := chain.Push(path); err != nil {
		return nil, err
	}
	defer chain.Pop()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading component %s: %w", path, err)
	}
	defer f.Close()

	var children []Node
	r := bufio.NewReader(f)
	for {
		line, readErr := r.ReadString('\n')
		if line != "" {
			if kind, ref := classifyLine(line); kind == lineInclude {
				target, err := index.Resolve(ref, root, idx)
				if err != nil {
					return nil, err
				}
				sub, err := BuildTree(target, root, idx, chain)
				if err != nil {
					return nil, err
				}
				children = append(children, Node{
					Name:     filepath.Base(filepath.FromSlash(ref)),
					Path:     target,
					Children: sub,
				})
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("reading component %s: %w", path, readErr)
		}
	}
	return children, nil
}

// PrintTree writes an indented include tree to w, one component per line.
func PrintTree(w io.Writer, rootName string, nodes []Node) {
	fmt.Fprintln(w, rootName)
	printNodes(w, nodes, 1)
}

func printNodes(w io.Writer, nodes []Node, depth int) {
	for _, n := range nodes {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), n.Name)
		printNodes(w, n.Children, depth+1)
	}
}
