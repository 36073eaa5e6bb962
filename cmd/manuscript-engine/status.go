// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manuscript-engine/internal/agent"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active workspace, its projects and actions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, local, err := loadWorkspace()
		if err != nil {
			return err
		}

		fmt.Printf("Workspace: %s (%s)\n", ws.Name, ws.Folder)
		if local.DefaultProject != "" {
			fmt.Printf("Default project: %s\n", local.DefaultProject)
		}

		handles := make([]string, 0, len(ws.Projects))
		for h := range ws.Projects {
			handles = append(handles, h)
		}
		sort.Strings(handles)

		fmt.Printf("\nProjects (%d):\n", len(handles))
		for _, h := range handles {
			proj := ws.Projects[h]
			fmt.Printf("  %-16s %s\n", h, proj.Name)
			fmt.Printf("    components: %s\n", proj.ComponentsFolder)
			fmt.Printf("    root:       %s\n", proj.RootComponent)
			if len(proj.Targets) > 0 {
				fmt.Printf("    targets:    %v\n", proj.TargetNames())
			}
		}

		actions, err := agent.LoadActions(ws.ActionPromptsFolder)
		if err != nil {
			return err
		}
		fmt.Printf("\nAgent actions (%d):\n", len(actions))
		printActionsIndented(actions)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func printActionsIndented(actions map[string]agent.Action) {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-16s [%s]\n", name, actions[name].Category)
	}
}
