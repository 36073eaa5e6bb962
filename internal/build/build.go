// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package build orchestrates one compose cycle: flatten the component tree,
// write the generated source into the project's build folder, invoke the
// LaTeX engine, and judge success by artifact presence.
package build

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdiddy/manuscript-engine/internal/compose"
	"github.com/pdiddy/manuscript-engine/internal/index"
	"github.com/pdiddy/manuscript-engine/internal/latex"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

const (
	// fullBuildStem names the full build's generated source. Target builds
	// derive their own stem so they never clobber the full build's aux
	// file, which carries the chapter page map.
	fullBuildStem = "composed_project"
)

// Driver runs compose cycles for one configured engine, reporting progress
// to Out.
type Driver struct {
	Engine latex.Engine
	Out    io.Writer
}

// ConfigError reports a target compose requested without the configuration
// it needs: a wrapper, a targets map, or a known target name.
type ConfigError struct {
	Project string
	Target  string
	Reason  string
	Valid   []string
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("project %s: %s", e.Project, e.Reason)
	if len(e.Valid) > 0 {
		msg += fmt.Sprintf(" (valid targets: %s)", strings.Join(e.Valid, ", "))
	}
	return msg
}

// Full composes the whole project from its root component and compiles it.
func (d *Driver) Full(proj types.Project) (types.BuildReport, error) {
	idx, err := index.Build(proj.ComponentsFolder)
	if err != nil {
		return types.BuildReport{}, err
	}

	text, err := compose.Expand(proj.RootComponent, proj.ComponentsFolder, idx, nil)
	if err != nil {
		return types.BuildReport{}, err
	}

	return d.compile(proj, "", fullBuildStem, text)
}

// Target composes a single named target through the project's wrapper
// template and compiles it standalone. The chapter page map is read from
// the full build's aux file so a chapter compiled after a full build keeps
// its page numbering.
func (d *Driver) Target(proj types.Project, name string) (types.BuildReport, error) {
	if proj.Wrapper == "" {
		return types.BuildReport{}, &ConfigError{
			Project: proj.Handle, Target: name,
			Reason: "no wrapper defined, cannot compose targets",
		}
	}
	if len(proj.Targets) == 0 {
		return types.BuildReport{}, &ConfigError{
			Project: proj.Handle, Target: name,
			Reason: "no targets defined",
		}
	}
	ref, ok := proj.Targets[name]
	if !ok {
		return types.BuildReport{}, &ConfigError{
			Project: proj.Handle, Target: name,
			Reason: fmt.Sprintf("unknown target %q", name),
			Valid:  proj.TargetNames(),
		}
	}

	idx, err := index.Build(proj.ComponentsFolder)
	if err != nil {
		return types.BuildReport{}, err
	}

	bodyPath, err := index.Resolve(ref, proj.ComponentsFolder, idx)
	if err != nil {
		return types.BuildReport{}, err
	}
	body, err := compose.Expand(bodyPath, proj.ComponentsFolder, idx, nil)
	if err != nil {
		return types.BuildReport{}, err
	}

	var preamble string
	if n, ok := compose.ChapterNumber(name, ref); ok {
		pages, err := compose.ParseAux(filepath.Join(proj.BuildFolder, fullBuildStem+".aux"))
		if err != nil {
			return types.BuildReport{}, err
		}
		preamble = compose.NumberingPreamble(n, pages)
	}

	text, err := compose.ComposeTarget(proj.Wrapper, body, preamble, proj.ComponentsFolder, idx)
	if err != nil {
		return types.BuildReport{}, err
	}

	return d.compile(proj, name, "composed_"+name, text)
}

// compile writes the composed text and runs the engine inside the build
// folder, restoring the working directory on every exit path.
func (d *Driver) compile(proj types.Project, target, stem, text string) (types.BuildReport, error) {
	if err := os.MkdirAll(proj.BuildFolder, 0o755); err != nil {
		return types.BuildReport{}, fmt.Errorf("creating build folder: %w", err)
	}

	texName := stem + ".tex"
	texPath := filepath.Join(proj.BuildFolder, texName)
	if err := os.WriteFile(texPath, []byte(text), 0o644); err != nil {
		return types.BuildReport{}, fmt.Errorf("writing %s: %w", texPath, err)
	}
	fmt.Fprintf(d.Out, "generated %s\n", texPath)

	report := types.BuildReport{
		Project: proj.Handle,
		Target:  target,
		TexPath: texPath,
		PDFPath: filepath.Join(proj.BuildFolder, stem+".pdf"),
	}

	start := time.Now()
	var out string
	var compileErr error
	err := inDir(proj.BuildFolder, func() error {
		out, compileErr = d.Engine.Compile(texName)
		return nil
	})
	report.Duration = time.Since(start)
	report.Log = out
	if err != nil {
		return report, err
	}

	// The engine exits non-zero on warnings-only runs, so the PDF on disk,
	// not the exit status, decides success.
	if _, statErr := os.Stat(report.PDFPath); statErr != nil {
		report.Status = types.BuildFailed
		fmt.Fprintf(d.Out, "%s compilation failed, no PDF produced; re-run with --verbose for the engine log\n", d.Engine.Name())
		return report, nil
	}

	if compileErr != nil {
		report.Status = types.BuildSucceededWithWarnings
		fmt.Fprintf(d.Out, "%s compilation successful with warnings\n", d.Engine.Name())
	} else {
		report.Status = types.BuildSucceeded
		fmt.Fprintf(d.Out, "%s compilation successful\n", d.Engine.Name())
	}

	// Page count is informational; an unreadable PDF does not fail the build.
	if pages, err := api.PageCountFile(report.PDFPath); err == nil {
		report.Pages = pages
	}

	fmt.Fprintf(d.Out, "output document: %s\n", report.PDFPath)
	return report, nil
}

// inDir runs fn with the working directory switched to dir, restoring the
// previous directory unconditionally. The working directory is the only
// process-global state this tool mutates; leaking the change would corrupt
// every later relative-path operation.
func inDir(dir string, fn func() error) error {
	prev, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("reading working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("entering build folder %s: %w", dir, err)
	}
	defer os.Chdir(prev)
	return fn()
}
