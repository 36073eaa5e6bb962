// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTree(t *testing.T) {
	t.Run("collects children in document order without expanding", func(t *testing.T) {
		root := t.TempDir()
		main := writeComponent(t, root, "main.tex",
			"text\n!!!>include(first.tex)\nmore\n!!!>include(sub/second.tex)\n")
		writeComponent(t, root, "first.tex", "!!!>include(leaf.tex)\n")
		writeComponent(t, root, "leaf.tex", "leaf text\n")
		writeComponent(t, root, filepath.Join("sub", "second.tex"), "plain\n")

		nodes, err := BuildTree(main, root, buildIndex(t, root), nil)
		require.NoError(t, err)

		require.Len(t, nodes, 2)
		assert.Equal(t, "first.tex", nodes[0].Name)
		require.Len(t, nodes[0].Children, 1)
		assert.Equal(t, "leaf.tex", nodes[0].Children[0].Name)
		// Path references display by basename too.
		assert.Equal(t, "second.tex", nodes[1].Name)
		assert.Empty(t, nodes[1].Children)
	})

	t.Run("cyclic tree fails", func(t *testing.T) {
		root := t.TempDir()
		main := writeComponent(t, root, "a.tex", "!!!>include(b.tex)\n")
		writeComponent(t, root, "b.tex", "!!!>include(a.tex)\n")

		_, err := BuildTree(main, root, buildIndex(t, root), nil)
		var cycle *CycleError
		require.ErrorAs(t, err, &cycle)
	})
}

func TestPrintTree(t *testing.T) {
	nodes := []Node{
		{Name: "intro.tex", Children: []Node{{Name: "figures.tex"}}},
		{Name: "outro.tex"},
	}

	var buf bytes.Buffer
	PrintTree(&buf, "main.tex", nodes)
	assert.Equal(t, "main.tex\n  intro.tex\n    figures.tex\n  outro.tex\n", buf.String())
}
