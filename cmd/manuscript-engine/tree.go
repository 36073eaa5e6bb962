// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manuscript-engine/internal/compose"
	"github.com/pdiddy/manuscript-engine/internal/index"
	"github.com/pdiddy/manuscript-engine/internal/workspace"
)

var treeCmd = &cobra.Command{
	Use:   "tree [project]",
	Short: "Print a project's include tree",
	Long: `Tree walks the include directives from the project's root component and
prints the component hierarchy without composing any text. A circular
include is reported the same way compose would report it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, local, err := loadWorkspace()
		if err != nil {
			return err
		}
		handle := ""
		if len(args) > 0 {
			handle = args[0]
		}
		proj, err := workspace.Project(ws, handle, local.DefaultProject)
		if err != nil {
			return err
		}

		idx, err := index.Build(proj.ComponentsFolder)
		if err != nil {
			return err
		}
		nodes, err := compose.BuildTree(proj.RootComponent, proj.ComponentsFolder, idx, nil)
		if err != nil {
			return err
		}
		compose.PrintTree(os.Stdout, filepath.Base(proj.RootComponent), nodes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
