// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Prompt is one prompt block of an action definition. Only the content is
// used today; keeping the struct leaves room for per-prompt parameters.
type Prompt struct {
	Content string `json:"content" yaml:"content"`
}

// ActionPrompt defines one agent action loaded from the workspace's action
// prompts folder. The file name is incidental; the action is addressed by
// AgentCommandName.
type ActionPrompt struct {
	// AgentCommandName is the handle used on the command line
	// (e.g. "proofread").
	AgentCommandName string `json:"agent_command_name" yaml:"agent_command_name"`

	// MainSourceLabel describes what the primary component is to the
	// model (e.g. "lecture notes").
	MainSourceLabel string `json:"main_source_label" yaml:"main_source_label"`

	// SystemPrompt is sent as the system message.
	SystemPrompt Prompt `json:"system_prompt" yaml:"system_prompt"`

	// UserPrompt optionally prefixes the user message.
	UserPrompt Prompt `json:"user_prompt" yaml:"user_prompt"`
}

// ActionCategory classifies where an action definition was found. Actions
// in the prompts folder root are uncategorized; subfolders categorize by
// scope.
type ActionCategory string

const (
	ActionUncategorized ActionCategory = "uncategorized"
	ActionGlobal        ActionCategory = "global"
	ActionProject       ActionCategory = "project"
	ActionComponent     ActionCategory = "component"
)
