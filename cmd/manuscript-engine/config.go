// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/manuscript-engine/internal/workspace"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or set the active workspace",
	Long: `Config manages the local ` + workspace.LocalConfigFile + ` file. Without flags it
prints the current configuration; with -w it points the CLI at a workspace
folder (one containing a ` + workspace.ConfigFileName + `).`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringP("workspace", "w", "", "workspace folder path to activate")

	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	folder, _ := cmd.Flags().GetString("workspace")

	if folder == "" {
		local, err := workspace.ReadLocalConfig(workspace.LocalConfigFile)
		if err != nil {
			return err
		}
		if local.WorkspaceFolder == "" {
			return fmt.Errorf("no %s found; usage: manuscript-engine config -w <workspace_folder>", workspace.LocalConfigFile)
		}
		data, err := yaml.Marshal(local)
		if err != nil {
			return err
		}
		fmt.Printf("Current configuration in %s:\n%s", workspace.LocalConfigFile, data)
		return nil
	}

	abs, err := filepath.Abs(folder)
	if err != nil {
		return err
	}
	warn := func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
	if err := workspace.SetWorkspace(workspace.LocalConfigFile, abs, warn); err != nil {
		return err
	}
	fmt.Printf("Updated %s\n  workspace_folder: %s\n", workspace.LocalConfigFile, abs)
	return nil
}

var aliasCmd = &cobra.Command{
	Use:   "alias [short] [project~component]",
	Short: "Save or list component aliases",
	Long: `Alias saves a shorthand for a project~component pair. Aliases work
anywhere a pair is accepted, most usefully with the agent command.
Without arguments, the saved aliases are listed.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runAlias,
}

func init() {
	rootCmd.AddCommand(aliasCmd)
}

func runAlias(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		local, err := workspace.ReadLocalConfig(workspace.LocalConfigFile)
		if err != nil {
			return err
		}
		if len(local.Aliases) == 0 {
			fmt.Println("No aliases saved.")
			return nil
		}
		data, err := yaml.Marshal(local.Aliases)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	case 2:
		if err := workspace.SaveAlias(workspace.LocalConfigFile, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Saved alias %s -> %s\n", args[0], args[1])
		return nil
	default:
		return fmt.Errorf("usage: manuscript-engine alias <short> <project~component>")
	}
}

var defaultCmd = &cobra.Command{
	Use:   "default <project>",
	Short: "Set the default project",
	Long: `Default stores the project handle used when a command omits the project
argument.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := workspace.SetDefaultProject(workspace.LocalConfigFile, args[0]); err != nil {
			return err
		}
		fmt.Printf("Default project set to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(defaultCmd)
}
