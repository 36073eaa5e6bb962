// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace loads workspace and project configuration.
//
// A workspace is a folder holding a workspace_config.yaml plus the project
// folders it names. The CLI finds the workspace through the local
// .manuscript.yaml file, which also stores component aliases and the
// default project.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// ConfigFileName is the workspace configuration file expected inside the
// workspace folder.
const ConfigFileName = "workspace_config.yaml"

// rawWorkspace mirrors workspace_config.yaml before path resolution.
type rawWorkspace struct {
	Name                string                `yaml:"name"`
	ActionPromptsFolder string                `yaml:"action_prompts_folder"`
	Projects            map[string]rawProject `yaml:"projects"`
}

// rawProject mirrors one project entry. project_folder is relative to the
// workspace folder; the remaining folders are relative to the project
// folder, and root_component/wrapper are relative to the components folder.
type rawProject struct {
	Name             string            `yaml:"name"`
	ProjectFolder    string            `yaml:"project_folder"`
	ComponentsFolder string            `yaml:"components_folder"`
	RootComponent    string            `yaml:"root_component"`
	BuildFolder      string            `yaml:"build_folder"`
	Wrapper          string            `yaml:"wrapper,omitempty"`
	Targets          map[string]string `yaml:"targets,omitempty"`
}

// Load reads workspace_config.yaml from folder and returns the workspace
// with every path resolved to an absolute path.
func Load(folder string) (*types.Workspace, error) {
	folder, err := filepath.Abs(folder)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(folder, ConfigFileName))
	if err != nil {
		return nil, fmt.Errorf("reading workspace config: %w", err)
	}

	var raw rawWorkspace
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing workspace config: %w", err)
	}
	if len(raw.Projects) == 0 {
		return nil, fmt.Errorf("workspace %s defines no projects", folder)
	}

	ws := &types.Workspace{
		Name:                raw.Name,
		Folder:              folder,
		ActionPromptsFolder: resolve(folder, raw.ActionPromptsFolder, "action_prompts"),
		Projects:            make(map[string]types.Project, len(raw.Projects)),
	}

	for handle, rp := range raw.Projects {
		proj, err := resolveProject(folder, handle, rp)
		if err != nil {
			return nil, err
		}
		ws.Projects[handle] = proj
	}
	return ws, nil
}

func resolveProject(wsFolder, handle string, rp rawProject) (types.Project, error) {
	if rp.ProjectFolder == "" {
		return types.Project{}, fmt.Errorf("project %s: project_folder is required", handle)
	}
	if rp.RootComponent == "" {
		return types.Project{}, fmt.Errorf("project %s: root_component is required", handle)
	}

	projFolder := resolve(wsFolder, rp.ProjectFolder, "")
	components := resolve(projFolder, rp.ComponentsFolder, "components")

	proj := types.Project{
		Handle:           handle,
		Name:             rp.Name,
		Folder:           projFolder,
		ComponentsFolder: components,
		RootComponent:    resolve(components, rp.RootComponent, ""),
		BuildFolder:      resolve(projFolder, rp.BuildFolder, "build"),
		Targets:          rp.Targets,
	}
	if rp.Wrapper != "" {
		proj.Wrapper = resolve(components, rp.Wrapper, "")
	}
	return proj, nil
}

// resolve joins a possibly-relative configured path against base, applying
// fallback when the configured value is empty.
func resolve(base, configured, fallback string) string {
	if configured == "" {
		configured = fallback
	}
	if configured == "" {
		return base
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Join(base, configured)
}

// Project returns the named project, falling back to defaultProject when
// handle is empty. The error lists the configured handles.
func Project(ws *types.Workspace, handle, defaultProject string) (types.Project, error) {
	if handle == "" {
		handle = defaultProject
	}
	if handle == "" {
		return types.Project{}, fmt.Errorf("no project given and no default project set (known projects: %v)", projectHandles(ws))
	}
	proj, ok := ws.Projects[handle]
	if !ok {
		return types.Project{}, fmt.Errorf("unknown project %q (known projects: %v)", handle, projectHandles(ws))
	}
	return proj, nil
}

func projectHandles(ws *types.Workspace) []string {
	handles := make([]string, 0, len(ws.Projects))
	for h := range ws.Projects {
		handles = append(handles, h)
	}
	sort.Strings(handles)
	return handles
}
