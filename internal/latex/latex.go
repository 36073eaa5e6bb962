// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package latex implements LaTeX engine detection and batch-mode invocation.
//
// Compile runs in the process's current working directory; the build driver
// switches into the build folder around the call so the engine drops its
// aux/log/pdf artifacts next to the generated source.
package latex

import (
	"fmt"
	"os/exec"
)

const (
	binPdflatex = "pdflatex"
	binXelatex  = "xelatex"
	binLualatex = "lualatex"
)

// Engine runs a LaTeX compiler in non-interactive batch mode.
type Engine interface {
	// Name returns the engine binary name ("pdflatex", "xelatex", "lualatex").
	Name() string

	// Available reports whether the engine binary exists on PATH.
	Available() bool

	// Compile runs the engine against texName in the current working
	// directory with batch flags and the output directory pinned there.
	// It returns the combined stdout/stderr; a non-nil error covers both
	// spawn failures and non-zero exits, which the caller disambiguates
	// via artifact presence.
	Compile(texName string) (string, error)
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunCombined(name string, args ...string) (string, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunCombined(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	return string(out), err
}

// engine implements Engine for a specific compiler binary. All supported
// engines accept the same batch flags; they differ only in binary name.
type engine struct {
	bin  string
	exec executor
}

func (e *engine) Name() string { return e.bin }

func (e *engine) Available() bool {
	_, err := e.exec.LookPath(e.bin)
	return err == nil
}

func (e *engine) Compile(texName string) (string, error) {
	args := []string{"-interaction=nonstopmode", "-output-directory=.", texName}
	out, err := e.exec.RunCombined(e.bin, args...)
	if err != nil {
		return out, fmt.Errorf("running %s on %s: %w", e.bin, texName, err)
	}
	return out, nil
}

var defaultExec executor = &osExecutor{}

// Named returns the engine with the given binary name without checking
// availability, for configurations that pin a specific engine.
func Named(bin string) Engine {
	return &engine{bin: bin, exec: defaultExec}
}

// Detect tries pdflatex first, then xelatex, then lualatex. It returns an
// error when no engine is on PATH.
func Detect() (Engine, error) {
	return detect(defaultExec)
}

func detect(exec executor) (Engine, error) {
	for _, bin := range []string{binPdflatex, binXelatex, binLualatex} {
		e := &engine{bin: bin, exec: exec}
		if e.Available() {
			return e, nil
		}
	}
	return nil, fmt.Errorf(
		"no LaTeX engine available: none of %s, %s, %s found on PATH",
		binPdflatex, binXelatex, binLualatex,
	)
}
