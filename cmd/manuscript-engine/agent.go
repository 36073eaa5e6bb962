// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/manuscript-engine/internal/agent"
	"github.com/pdiddy/manuscript-engine/internal/secrets"
	"github.com/pdiddy/manuscript-engine/internal/workspace"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

var agentCmd = &cobra.Command{
	Use:   "agent [action] [project~component...]",
	Short: "Run an LLM editing action on one or more components",
	Long: `Agent sends component text to a chat-completion API and overwrites the
component with the response.

Positional mode takes one project~component pair (rewrite in place) or two
(the first is a read-only source, the second the rewritten destination).
Flag mode takes any number of --input pairs plus one --target pair for
multi-input actions. An alias saved with 'manuscript-engine alias' can
stand in for any pair.

Use --list to see the available actions and their categories.`,
	RunE: runAgent,
}

func init() {
	agentCmd.Flags().Bool("list", false, "list available actions")
	agentCmd.Flags().Bool("exact", false, "require exact component names, no automatic suggestions")
	agentCmd.Flags().StringArray("input", nil, "read-only input component (project~component), repeatable")
	agentCmd.Flags().String("target", "", "target component to rewrite (project~component)")

	rootCmd.AddCommand(agentCmd)
}

func runAgent(cmd *cobra.Command, args []string) error {
	list, _ := cmd.Flags().GetBool("list")
	exact, _ := cmd.Flags().GetBool("exact")
	inputs, _ := cmd.Flags().GetStringArray("input")
	target, _ := cmd.Flags().GetString("target")

	ws, local, err := loadWorkspace()
	if err != nil {
		return err
	}
	actions, err := agent.LoadActions(ws.ActionPromptsFolder)
	if err != nil {
		return err
	}

	if list {
		printActions(actions)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("an ACTION is required; try 'manuscript-engine agent --list'")
	}
	action := args[0]
	pairs := args[1:]

	if len(pairs) > 0 && (len(inputs) > 0 || target != "") {
		return fmt.Errorf("cannot mix positional project~component pairs with --input/--target flags")
	}

	client, err := newChatClient()
	if err != nil {
		return err
	}
	runner := &agent.Runner{
		Client:  client,
		Actions: actions,
		Exact:   exact,
		Out:     os.Stdout,
		Warn:    os.Stderr,
	}
	ctx := context.Background()

	// Flag mode: multi-input action.
	if len(inputs) > 0 || target != "" {
		if len(inputs) == 0 {
			return fmt.Errorf("flag mode needs at least one --input")
		}
		if target == "" {
			return fmt.Errorf("flag mode needs a --target")
		}
		inputRefs := make([]agent.ComponentRef, 0, len(inputs))
		for _, pair := range inputs {
			ref, err := parseComponentRef(ws, local, pair)
			if err != nil {
				return err
			}
			inputRefs = append(inputRefs, ref)
		}
		targetRef, err := parseComponentRef(ws, local, target)
		if err != nil {
			return err
		}
		return runner.RunMultiInput(ctx, action, inputRefs, targetRef)
	}

	switch len(pairs) {
	case 1:
		ref, err := parseComponentRef(ws, local, pairs[0])
		if err != nil {
			return err
		}
		return runner.RunSingle(ctx, action, ref)
	case 2:
		source, err := parseComponentRef(ws, local, pairs[0])
		if err != nil {
			return err
		}
		dest, err := parseComponentRef(ws, local, pairs[1])
		if err != nil {
			return err
		}
		return runner.RunSourceDest(ctx, action, source, dest)
	case 0:
		return fmt.Errorf("need at least one project~component pair (or --input/--target flags)")
	default:
		return fmt.Errorf("positional mode supports 1 or 2 project~component pairs, got %d", len(pairs))
	}
}

// parseComponentRef turns a "project~component" pair (or a saved alias)
// into a resolved component reference.
func parseComponentRef(ws *types.Workspace, local types.LocalConfig, pair string) (agent.ComponentRef, error) {
	if full, ok := local.Aliases[pair]; ok {
		pair = full
	}
	projHandle, component, found := strings.Cut(pair, "~")
	if !found {
		return agent.ComponentRef{}, fmt.Errorf("%q is missing '~': format is project~component", pair)
	}
	proj, err := workspace.Project(ws, projHandle, local.DefaultProject)
	if err != nil {
		return agent.ComponentRef{}, err
	}
	return agent.ComponentRef{Project: proj, Handle: component}, nil
}

func newChatClient() (agent.ChatClient, error) {
	cfg := types.AgentConfig{
		Model:      viper.GetString("agent.model"),
		APIKey:     secrets.Resolve(loadedSecrets, secrets.OpenAIKey, "OPENAI_API_KEY"),
		MaxRetries: viper.GetInt("agent.max_retries"),
		RetryDelay: viper.GetDuration("agent.retry_delay"),
	}
	return agent.NewOpenAIClient(cfg)
}

func printActions(actions map[string]agent.Action) {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Available agent actions:")
	for _, name := range names {
		fmt.Printf("  %-16s [%s]\n", name, actions[name].Category)
	}
}
