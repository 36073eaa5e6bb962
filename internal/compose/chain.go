// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import "fmt"

// CycleError reports a component that transitively includes itself along
// one expansion branch.
type CycleError struct {
	Path string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular include detected with file: %s", e.Path)
}

// Chain is the ordered set of absolute paths currently open on the active
// root-to-leaf expansion branch. A path is pushed on entry to its expansion
// and popped on exit, so the same component may appear many times in the
// output via different branches but never include itself within one branch.
type Chain struct {
	order  []string
	member map[string]bool
}

// NewChain returns an empty inclusion chain.
func NewChain() *Chain {
	return &Chain{member: make(map[string]bool)}
}

// Push adds path to the chain, failing with a CycleError when the path is
// already open on this branch.
func (c *Chain) Push(path string) error {
	if c.member[path] {
		return &CycleError{Path: path}
	}
	c.member[path] = true
	c.order = append(c.order, path)
	return nil
}

// Pop removes the most recently pushed path. Pops are paired with pushes
// by the composer's scope handling; popping an empty chain is a no-op.
func (c *Chain) Pop() {
	if len(c.order) == 0 {
		return
	}
	last := c.order[len(c.order)-1]
	c.order = c.order[:len(c.order)-1]
	delete(c.member, last)
}

// Depth returns the number of open expansions.
func (c *Chain) Depth() int {
	return len(c.order)
}
