// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manuscript-engine/internal/split"
	"github.com/pdiddy/manuscript-engine/internal/workspace"
)

var splitCmd = &cobra.Command{
	Use:   "split <project~component>",
	Short: "Split a component at sectioning commands into sub-components",
	Long: `Split partitions a component at LaTeX sectioning command lines (e.g.
\section{...}). Each section body moves into a new sub-component and the
parent keeps the command line followed by an !!!>include(...) directive,
so composing reproduces the original text.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().String("on", "section", `sectioning command to split on (e.g. section, subsection, chapter)`)
	splitCmd.Flags().String("subdir", "", "place sub-components into this subdirectory of the parent's folder")
	splitCmd.Flags().Bool("numbered", false, "prefix sub-component filenames with a sequence number")
	splitCmd.Flags().String("prefix", "", "extra prefix before the sequence number (implies --numbered)")

	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	on, _ := cmd.Flags().GetString("on")
	subdir, _ := cmd.Flags().GetString("subdir")
	numbered, _ := cmd.Flags().GetBool("numbered")
	prefix, _ := cmd.Flags().GetString("prefix")

	ws, local, err := loadWorkspace()
	if err != nil {
		return err
	}

	pair := args[0]
	if full, ok := local.Aliases[pair]; ok {
		pair = full
	}
	projHandle, component, found := strings.Cut(pair, "~")
	if !found {
		return fmt.Errorf("%q is missing '~': format is project~component", pair)
	}
	proj, err := workspace.Project(ws, projHandle, local.DefaultProject)
	if err != nil {
		return err
	}

	opts := split.Options{
		Command:  on,
		Subdir:   subdir,
		Numbered: numbered || prefix != "",
		Prefix:   prefix,
	}
	_, err = split.Split(filepath.Join(proj.ComponentsFolder, filepath.FromSlash(component)), opts, os.Stdout)
	return err
}
