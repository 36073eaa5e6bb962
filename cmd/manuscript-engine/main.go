// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the manuscript-engine CLI.
//
// manuscript-engine assembles LaTeX documents from reusable component
// files, compiles them, and runs LLM-backed editing actions on individual
// components. Each operation is a subcommand: compose, agent, split,
// config, alias, default, status, tree, history.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/manuscript-engine/internal/secrets"
	"github.com/pdiddy/manuscript-engine/internal/workspace"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the manuscript-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "manuscript-engine",
	Short: "Compose LaTeX documents from components and edit them with an LLM",
	Long: `manuscript-engine maintains a workspace of document projects whose text
lives in small component files joined by !!!>include(...) directives.

compose flattens a project's component tree (or a single chapter target
through the project's wrapper template) and runs the LaTeX engine on the
result. agent sends a component to a chat-completion API for automated
editing and writes the revision back in place. split is the inverse of
compose: it breaks a component apart at sectioning commands.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is a convenience for OPENAI_API_KEY; absence is normal.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/", os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./manuscript-engine.yaml or ~/.config/manuscript-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("manuscript-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "manuscript-engine"))
		}
	}

	viper.SetEnvPrefix("MANUSCRIPT_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadWorkspace resolves the active workspace through the local config
// file in the current directory.
func loadWorkspace() (*types.Workspace, types.LocalConfig, error) {
	local, err := workspace.ReadLocalConfig(workspace.LocalConfigFile)
	if err != nil {
		return nil, local, err
	}
	if local.WorkspaceFolder == "" {
		return nil, local, fmt.Errorf("no workspace configured; run 'manuscript-engine config -w <workspace>' first")
	}
	ws, err := workspace.Load(local.WorkspaceFolder)
	if err != nil {
		return nil, local, err
	}
	return ws, local, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
