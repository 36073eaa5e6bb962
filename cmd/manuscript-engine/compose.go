// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/manuscript-engine/internal/build"
	"github.com/pdiddy/manuscript-engine/internal/history"
	"github.com/pdiddy/manuscript-engine/internal/latex"
	"github.com/pdiddy/manuscript-engine/internal/watch"
	"github.com/pdiddy/manuscript-engine/internal/workspace"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

var composeCmd = &cobra.Command{
	Use:   "compose [project]",
	Short: "Compose a project (or one target) and compile it",
	Long: `Compose flattens the project's component tree into a single .tex file in
the project's build folder and runs the LaTeX engine on it in batch mode.

With --target, only the named compose target is built: its component is
expanded and spliced into the project's wrapper template, with chapter and
page counters set so the standalone chapter matches the full document.

A PDF on disk is what counts as success; the engine's exit status alone
only downgrades the result to "successful with warnings".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompose,
}

func init() {
	composeCmd.Flags().String("target", "", "compose target name (chapter build)")
	composeCmd.Flags().Bool("watch", false, "recompose whenever a component changes")
	composeCmd.Flags().Bool("verbose", false, "print the engine's full output")

	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, args []string) error {
	target, _ := cmd.Flags().GetString("target")
	watchMode, _ := cmd.Flags().GetBool("watch")
	verbose, _ := cmd.Flags().GetBool("verbose")

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

	engine, err := selectEngine()
	if err != nil {
		return err
	}
	driver := &build.Driver{Engine: engine, Out: os.Stdout}

	run := func() error {
		var report types.BuildReport
		var buildErr error
		if target == "" {
			report, buildErr = driver.Full(proj)
		} else {
			report, buildErr = driver.Target(proj, target)
		}
		if buildErr != nil {
			return buildErr
		}
		if verbose && report.Log != "" {
			fmt.Fprintln(os.Stdout, report.Log)
		}
		recordBuild(report)
		if !report.Status.OK() {
			return fmt.Errorf("compose %s: compilation produced no PDF", proj.Handle)
		}
		return nil
	}

	if !watchMode {
		return run()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "initial build failed: %v\n", err)
	}
	if err := watch.Run(ctx, proj.ComponentsFolder, run, os.Stdout); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// selectEngine honors a pinned engine from configuration and otherwise
// detects the first available one.
func selectEngine() (latex.Engine, error) {
	if bin := viper.GetString("build.engine"); bin != "" {
		return latex.Named(bin), nil
	}
	return latex.Detect()
}

// recordBuild appends the report to the build history. History is
// best-effort: a missing or broken database never fails a build.
func recordBuild(report types.BuildReport) {
	path := viper.GetString("build.history_path")
	if path == "" {
		path = ".manuscript-history.db"
	}

	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: build history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(context.Background(), report); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record build: %v\n", err)
	}
}
