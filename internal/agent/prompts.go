// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent sends component text to a chat-completion API for automated
// editing and writes the revised text back in place.
//
// Actions are defined as YAML files in the workspace's action prompts
// folder. Files in the folder root are uncategorized; the global/, project/
// and component/ subfolders categorize actions by scope.
package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// Action is one loaded action prompt plus the category of the folder it
// came from.
type Action struct {
	types.ActionPrompt
	Category types.ActionCategory
}

// searchLocations pairs each prompt subfolder with its category. An empty
// subfolder means the prompts folder root.
var searchLocations = []struct {
	subfolder string
	category  types.ActionCategory
}{
	{"", types.ActionUncategorized},
	{"global", types.ActionGlobal},
	{"project", types.ActionProject},
	{"component", types.ActionComponent},
}

// LoadActions reads every action definition under folder, keyed by the
// action's command name. A missing subfolder is skipped; a malformed YAML
// file is a hard error naming the file.
func LoadActions(folder string) (map[string]Action, error) {
	actions := make(map[string]Action)

	for _, loc := range searchLocations {
		dir := folder
		if loc.subfolder != "" {
			dir = filepath.Join(folder, loc.subfolder)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading action prompts folder %s: %w", dir, err)
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !isYAML(name) {
				continue
			}
			path := filepath.Join(dir, name)
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading action prompt %s: %w", path, err)
			}
			var ap types.ActionPrompt
			if err := yaml.Unmarshal(data, &ap); err != nil {
				return nil, fmt.Errorf("parsing action prompt %s: %w", path, err)
			}
			if ap.AgentCommandName == "" {
				return nil, fmt.Errorf("action prompt %s: agent_command_name is required", path)
			}
			actions[ap.AgentCommandName] = Action{ActionPrompt: ap, Category: loc.category}
		}
	}
	return actions, nil
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
