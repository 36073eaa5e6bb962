// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

func writeWorkspaceConfig(t *testing.T, folder, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(folder, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(folder, ConfigFileName), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	t.Run("resolves every path to absolute", func(t *testing.T) {
		folder := t.TempDir()
		writeWorkspaceConfig(t, folder, `name: research
action_prompts_folder: prompts
projects:
  thesis:
    name: PhD Thesis
    project_folder: phd
    components_folder: parts
    root_component: main.tex
    build_folder: out
    wrapper: wrapper.tex
    targets:
      chap1: 1_intro.tex
      chap2: 2_methods.tex
`)

		ws, err := Load(folder)
		require.NoError(t, err)
		assert.Equal(t, "research", ws.Name)
		assert.Equal(t, folder, ws.Folder)
		assert.Equal(t, filepath.Join(folder, "prompts"), ws.ActionPromptsFolder)

		proj := ws.Projects["thesis"]
		assert.Equal(t, "thesis", proj.Handle)
		assert.Equal(t, "PhD Thesis", proj.Name)
		assert.Equal(t, filepath.Join(folder, "phd"), proj.Folder)
		assert.Equal(t, filepath.Join(folder, "phd", "parts"), proj.ComponentsFolder)
		assert.Equal(t, filepath.Join(folder, "phd", "parts", "main.tex"), proj.RootComponent)
		assert.Equal(t, filepath.Join(folder, "phd", "out"), proj.BuildFolder)
		assert.Equal(t, filepath.Join(folder, "phd", "parts", "wrapper.tex"), proj.Wrapper)
		assert.Equal(t, []string{"chap1", "chap2"}, proj.TargetNames())
	})

	t.Run("applies folder defaults", func(t *testing.T) {
		folder := t.TempDir()
		writeWorkspaceConfig(t, folder, `name: minimal
projects:
  book:
    project_folder: book
    root_component: main.tex
`)

		ws, err := Load(folder)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(folder, "action_prompts"), ws.ActionPromptsFolder)

		proj := ws.Projects["book"]
		assert.Equal(t, filepath.Join(folder, "book", "components"), proj.ComponentsFolder)
		assert.Equal(t, filepath.Join(folder, "book", "build"), proj.BuildFolder)
		assert.Empty(t, proj.Wrapper)
	})

	t.Run("missing config file fails", func(t *testing.T) {
		_, err := Load(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading workspace config")
	})

	t.Run("workspace without projects fails", func(t *testing.T) {
		folder := t.TempDir()
		writeWorkspaceConfig(t, folder, "name: empty\n")
		_, err := Load(folder)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "defines no projects")
	})

	t.Run("project_folder and root_component are required", func(t *testing.T) {
		folder := t.TempDir()
		writeWorkspaceConfig(t, folder, `projects:
  broken:
    root_component: main.tex
`)
		_, err := Load(folder)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "project_folder is required")

		writeWorkspaceConfig(t, folder, `projects:
  broken:
    project_folder: b
`)
		_, err = Load(folder)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "root_component is required")
	})
}

func TestProject(t *testing.T) {
	ws := &types.Workspace{
		Projects: map[string]types.Project{
			"thesis": {Handle: "thesis"},
			"book":   {Handle: "book"},
		},
	}

	t.Run("explicit handle", func(t *testing.T) {
		proj, err := Project(ws, "book", "thesis")
		require.NoError(t, err)
		assert.Equal(t, "book", proj.Handle)
	})

	t.Run("empty handle falls back to default", func(t *testing.T) {
		proj, err := Project(ws, "", "thesis")
		require.NoError(t, err)
		assert.Equal(t, "thesis", proj.Handle)
	})

	t.Run("no handle and no default", func(t *testing.T) {
		_, err := Project(ws, "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "[book thesis]")
	})

	t.Run("unknown handle lists known projects", func(t *testing.T) {
		_, err := Project(ws, "nope", "thesis")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown project "nope"`)
		assert.Contains(t, err.Error(), "[book thesis]")
	})
}
