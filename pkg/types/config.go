// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// BuildConfig holds tool-level settings for the build driver.
type BuildConfig struct {
	// Engine is the LaTeX engine binary: pdflatex, xelatex, or lualatex.
	// Empty selects the first available engine.
	Engine string `json:"engine,omitempty" yaml:"engine,omitempty"`

	// HistoryPath is the SQLite build-history database location
	// (default ".manuscript-history.db").
	HistoryPath string `json:"history_path,omitempty" yaml:"history_path,omitempty"`
}

// AgentConfig holds tool-level settings for the LLM agent.
type AgentConfig struct {
	// Model is the chat model identifier (default "gpt-4o").
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// APIKey authenticates against the API. Usually supplied via
	// .secrets/openai-api-key or the OPENAI_API_KEY environment variable
	// rather than the config file.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of attempts for a failed API call (default 3).
	MaxRetries int `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`

	// RetryDelay is the base delay between attempts (default 2s).
	RetryDelay time.Duration `json:"retry_delay,omitempty" yaml:"retry_delay,omitempty"`
}

// LocalConfig is the per-directory configuration file (.manuscript.yaml)
// that anchors the CLI to a workspace. It also carries user conveniences:
// component aliases and the default project.
type LocalConfig struct {
	// WorkspaceFolder is the absolute path of the active workspace.
	WorkspaceFolder string `json:"workspace_folder" yaml:"workspace_folder"`

	// DefaultProject is used when a command omits the project handle.
	DefaultProject string `json:"default_project,omitempty" yaml:"default_project,omitempty"`

	// Aliases maps a short name to a project~component pair.
	Aliases map[string]string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}
