// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// fakeEngine implements latex.Engine. It optionally drops a fake PDF next
// to the source, like a real engine running in the build folder would, and
// records the directory it ran in.
type fakeEngine struct {
	producePDF bool
	compileErr error

	ranIn  string
	ranTex string
}

func (f *fakeEngine) Name() string    { return "fakelatex" }
func (f *fakeEngine) Available() bool { return true }

func (f *fakeEngine) Compile(texName string) (string, error) {
	f.ranTex = texName
	f.ranIn, _ = os.Getwd()
	if f.producePDF {
		stem := texName[:len(texName)-len(".tex")]
		if err := os.WriteFile(stem+".pdf", []byte("%PDF-1.5 fake"), 0o644); err != nil {
			return "", err
		}
	}
	return "engine log\n", f.compileErr
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newProject lays out a minimal project on disk: components with a root
// component and one chapter, a wrapper, and an empty build folder.
func newProject(t *testing.T) types.Project {
	t.Helper()
	dir := t.TempDir()
	proj := types.Project{
		Handle:           "thesis",
		Name:             "Thesis",
		Folder:           dir,
		ComponentsFolder: filepath.Join(dir, "components"),
		RootComponent:    filepath.Join(dir, "components", "main.tex"),
		BuildFolder:      filepath.Join(dir, "build"),
		Wrapper:          filepath.Join(dir, "components", "wrapper.tex"),
		Targets:          map[string]string{"chap2": "2_methods.tex"},
	}
	writeFile(t, proj.RootComponent, "\\chapter{Intro}\n!!!>include(2_methods.tex)\n")
	writeFile(t, filepath.Join(proj.ComponentsFolder, "2_methods.tex"), "\\chapter{Methods}\nbody\n")
	writeFile(t, proj.Wrapper, "\\begin{document}\n!!!>target_preamble\n!!!>include_target\n\\end{document}\n")
	return proj
}

func TestFull(t *testing.T) {
	t.Run("composes, compiles in the build folder, and restores cwd", func(t *testing.T) {
		proj := newProject(t)
		eng := &fakeEngine{producePDF: true}
		var out bytes.Buffer
		d := &Driver{Engine: eng, Out: &out}

		before, err := os.Getwd()
		require.NoError(t, err)

		report, err := d.Full(proj)
		require.NoError(t, err)

		after, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.Equal(t, proj.BuildFolder, eng.ranIn)
		assert.Equal(t, "composed_project.tex", eng.ranTex)

		assert.Equal(t, types.BuildSucceeded, report.Status)
		assert.True(t, report.Status.OK())
		assert.Equal(t, "thesis", report.Project)
		assert.Empty(t, report.Target)

		// The generated source is the flattened component tree.
		text, err := os.ReadFile(report.TexPath)
		require.NoError(t, err)
		assert.Equal(t, "\\chapter{Intro}\n\\chapter{Methods}\nbody\n", string(text))
	})

	t.Run("missing PDF means failure regardless of exit status", func(t *testing.T) {
		proj := newProject(t)
		var out bytes.Buffer
		d := &Driver{Engine: &fakeEngine{producePDF: false}, Out: &out}

		report, err := d.Full(proj)
		require.NoError(t, err)
		assert.Equal(t, types.BuildFailed, report.Status)
		assert.False(t, report.Status.OK())
		assert.Contains(t, out.String(), "no PDF produced")
	})

	t.Run("PDF on disk beats a non-zero exit", func(t *testing.T) {
		proj := newProject(t)
		var out bytes.Buffer
		d := &Driver{
			Engine: &fakeEngine{producePDF: true, compileErr: errors.New("exit status 1")},
			Out:    &out,
		}

		report, err := d.Full(proj)
		require.NoError(t, err)
		assert.Equal(t, types.BuildSucceededWithWarnings, report.Status)
		assert.True(t, report.Status.OK())
		assert.Contains(t, out.String(), "successful with warnings")
	})

	t.Run("compose failure aborts before any engine run", func(t *testing.T) {
		proj := newProject(t)
		writeFile(t, proj.RootComponent, "!!!>include(nope.tex)\n")
		eng := &fakeEngine{producePDF: true}
		d := &Driver{Engine: eng, Out: &bytes.Buffer{}}

		_, err := d.Full(proj)
		require.Error(t, err)
		assert.Empty(t, eng.ranTex)
	})
}

func TestTarget(t *testing.T) {
	t.Run("composes through the wrapper with numbering", func(t *testing.T) {
		proj := newProject(t)
		// A prior full build left an aux file carrying chapter start pages.
		writeFile(t, filepath.Join(proj.BuildFolder, "composed_project.aux"),
			"\\contentsline {chapter}{\\numberline {2}Methods}{15}{chapter.2}\n")
		eng := &fakeEngine{producePDF: true}
		var out bytes.Buffer
		d := &Driver{Engine: eng, Out: &out}

		report, err := d.Target(proj, "chap2")
		require.NoError(t, err)
		assert.Equal(t, types.BuildSucceeded, report.Status)
		assert.Equal(t, "chap2", report.Target)
		assert.Equal(t, "composed_chap2.tex", eng.ranTex)

		text, err := os.ReadFile(report.TexPath)
		require.NoError(t, err)
		assert.Equal(t,
			"\\begin{document}\n"+
				"\\setcounter{chapter}{1}\n\\setcounter{page}{15}\n"+
				"\\chapter{Methods}\nbody\n"+
				"\\end{document}\n",
			string(text))
	})

	t.Run("no aux file still sets the chapter counter", func(t *testing.T) {
		proj := newProject(t)
		d := &Driver{Engine: &fakeEngine{producePDF: true}, Out: &bytes.Buffer{}}

		report, err := d.Target(proj, "chap2")
		require.NoError(t, err)

		text, err := os.ReadFile(report.TexPath)
		require.NoError(t, err)
		assert.Contains(t, string(text), "\\setcounter{chapter}{1}\n")
		assert.NotContains(t, string(text), "\\setcounter{page}")
	})

	t.Run("target build never touches the full build source", func(t *testing.T) {
		proj := newProject(t)
		d := &Driver{Engine: &fakeEngine{producePDF: true}, Out: &bytes.Buffer{}}

		report, err := d.Target(proj, "chap2")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(proj.BuildFolder, "composed_chap2.tex"), report.TexPath)
		_, err = os.Stat(filepath.Join(proj.BuildFolder, "composed_project.tex"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("configuration errors", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(p *types.Project)
			target string
			errMsg string
		}{
			{
				name:   "no wrapper",
				mutate: func(p *types.Project) { p.Wrapper = "" },
				target: "chap2",
				errMsg: "no wrapper defined",
			},
			{
				name:   "no targets",
				mutate: func(p *types.Project) { p.Targets = nil },
				target: "chap2",
				errMsg: "no targets defined",
			},
			{
				name:   "unknown target lists valid ones",
				mutate: func(p *types.Project) {},
				target: "chap9",
				errMsg: `unknown target "chap9" (valid targets: chap2)`,
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				proj := newProject(t)
				tt.mutate(&proj)
				d := &Driver{Engine: &fakeEngine{}, Out: &bytes.Buffer{}}

				_, err := d.Target(proj, tt.target)
				var cfgErr *ConfigError
				require.ErrorAs(t, err, &cfgErr)
				assert.Contains(t, err.Error(), tt.errMsg)
			})
		}
	})
}
