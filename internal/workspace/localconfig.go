// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// LocalConfigFile is the per-directory file anchoring the CLI to a
// workspace.
const LocalConfigFile = ".manuscript.yaml"

// ReadLocalConfig loads the local configuration from path. A missing file
// returns a zero config, letting callers distinguish "not initialized"
// from a read failure.
func ReadLocalConfig(path string) (types.LocalConfig, error) {
	var cfg types.LocalConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// WriteLocalConfig persists cfg to path.
func WriteLocalConfig(path string, cfg types.LocalConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// SetWorkspace points the local config at folder, creating the file when
// absent and preserving aliases and the default project otherwise. The
// folder must exist; a missing workspace_config.yaml inside it is only a
// warning since the user may be setting up a fresh workspace.
func SetWorkspace(path, folder string, warn func(format string, args ...any)) error {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("workspace folder %q does not exist", folder)
	}
	if _, err := os.Stat(configPath(folder)); err != nil {
		warn("warning: %s not found in %q", ConfigFileName, folder)
	}

	cfg, err := ReadLocalConfig(path)
	if err != nil {
		return err
	}
	cfg.WorkspaceFolder = folder
	return WriteLocalConfig(path, cfg)
}

// SaveAlias adds or updates a component alias in the local config. The
// config file must already exist.
func SaveAlias(path, short, full string) error {
	cfg, err := requireLocalConfig(path)
	if err != nil {
		return err
	}
	if cfg.Aliases == nil {
		cfg.Aliases = make(map[string]string)
	}
	cfg.Aliases[short] = full
	return WriteLocalConfig(path, cfg)
}

// SetDefaultProject stores the default project handle in the local config.
// The config file must already exist.
func SetDefaultProject(path, handle string) error {
	cfg, err := requireLocalConfig(path)
	if err != nil {
		return err
	}
	cfg.DefaultProject = handle
	return WriteLocalConfig(path, cfg)
}

func requireLocalConfig(path string) (types.LocalConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return types.LocalConfig{}, fmt.Errorf("%s not found; run 'manuscript-engine config -w <workspace>' first", path)
	}
	return ReadLocalConfig(path)
}

func configPath(folder string) string {
	return filepath.Join(folder, ConfigFileName)
}
