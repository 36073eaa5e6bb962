// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the value types shared between the CLI and the
// internal packages: workspace and project descriptions, compose targets,
// build reports, and agent action prompts.
package types

import "sort"

// Workspace is a loaded workspace: a folder containing one or more
// document projects plus the shared agent action prompts.
type Workspace struct {
	// Name is the human-readable workspace name.
	Name string `json:"name" yaml:"name"`

	// Folder is the absolute path to the workspace folder.
	Folder string `json:"folder" yaml:"folder"`

	// ActionPromptsFolder is the absolute path to the agent action
	// prompt definitions.
	ActionPromptsFolder string `json:"action_prompts_folder" yaml:"action_prompts_folder"`

	// Projects maps project handle to project description.
	Projects map[string]Project `json:"projects" yaml:"projects"`
}

// Project describes one document project inside a workspace. All paths
// are absolute after loading.
type Project struct {
	// Handle is the short key used on the command line.
	Handle string `json:"handle" yaml:"handle"`

	// Name is the human-readable project name.
	Name string `json:"name" yaml:"name"`

	// Folder is the project folder.
	Folder string `json:"folder" yaml:"folder"`

	// ComponentsFolder holds the component tree scanned by the file index.
	ComponentsFolder string `json:"components_folder" yaml:"components_folder"`

	// RootComponent is the component the full build starts from.
	RootComponent string `json:"root_component" yaml:"root_component"`

	// BuildFolder receives the generated .tex, the compiler's .aux and
	// the produced .pdf.
	BuildFolder string `json:"build_folder" yaml:"build_folder"`

	// Wrapper is the wrapper template used for target builds. Empty when
	// the project defines no targets.
	Wrapper string `json:"wrapper,omitempty" yaml:"wrapper,omitempty"`

	// Targets maps a target name (e.g. "chap2") to the component reference
	// whose expansion becomes the wrapper body.
	Targets map[string]string `json:"targets,omitempty" yaml:"targets,omitempty"`
}

// TargetNames returns the sorted list of target names, used in error
// messages when an unknown target is requested.
func (p Project) TargetNames() []string {
	names := make([]string, 0, len(p.Targets))
	for name := range p.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
