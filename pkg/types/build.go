// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// BuildStatus is the outcome of one compose-and-compile cycle.
type BuildStatus string

const (
	// BuildSucceeded means the compiler exited cleanly and the PDF exists.
	BuildSucceeded BuildStatus = "succeeded"

	// BuildSucceededWithWarnings means the compiler exited non-zero but
	// still produced a PDF. LaTeX routinely does this on warnings-only
	// runs, so artifact presence is the authoritative signal.
	BuildSucceededWithWarnings BuildStatus = "succeeded-with-warnings"

	// BuildFailed means no PDF was produced.
	BuildFailed BuildStatus = "failed"
)

// OK reports whether a usable PDF was produced.
func (s BuildStatus) OK() bool {
	return s == BuildSucceeded || s == BuildSucceededWithWarnings
}

// BuildReport describes the result of one build driver run.
type BuildReport struct {
	// Project is the project handle.
	Project string `json:"project" yaml:"project"`

	// Target is the compose target name, empty for a full build.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`

	// TexPath is the generated source file inside the build folder.
	TexPath string `json:"tex_path" yaml:"tex_path"`

	// PDFPath is the expected artifact path; it exists iff Status.OK().
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// Status is the build outcome.
	Status BuildStatus `json:"status" yaml:"status"`

	// Pages is the page count of the produced PDF, 0 when unknown.
	Pages int `json:"pages,omitempty" yaml:"pages,omitempty"`

	// Duration is the wall-clock time of the compiler invocation.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Log is the combined compiler output, kept for --verbose reporting.
	Log string `json:"-" yaml:"-"`
}

// BuildRecord is one row of the build history store.
type BuildRecord struct {
	ID        string      `json:"id"`
	Project   string      `json:"project"`
	Target    string      `json:"target,omitempty"`
	Status    BuildStatus `json:"status"`
	Pages     int         `json:"pages"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time   `json:"created_at"`
}
