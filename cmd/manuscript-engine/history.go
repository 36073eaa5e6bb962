// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/manuscript-engine/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [project]",
	Short: "List recent builds",
	Long: `History lists the most recent compose runs recorded in the build history
database, newest first. An optional project handle narrows the list.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		path := viper.GetString("build.history_path")
		if path == "" {
			path = ".manuscript-history.db"
		}
		store, err := history.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		project := ""
		if len(args) > 0 {
			project = args[0]
		}
		records, err := store.Recent(context.Background(), project, limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No builds recorded yet.")
			return nil
		}

		fmt.Printf("%-20s  %-12s  %-10s  %-24s  %5s  %s\n",
			"When", "Project", "Target", "Status", "Pages", "Duration")
		for _, r := range records {
			target := r.Target
			if target == "" {
				target = "(full)"
			}
			fmt.Printf("%-20s  %-12s  %-10s  %-24s  %5d  %s\n",
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				r.Project, target, r.Status, r.Pages, r.Duration)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of builds to list")

	rootCmd.AddCommand(historyCmd)
}
