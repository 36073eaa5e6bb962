// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// ComponentRef names a component within a specific project.
type ComponentRef struct {
	Project types.Project
	Handle  string
}

// Runner executes agent actions: it resolves components, builds the
// prompt exchange, calls the chat client, and overwrites the target
// component with the response.
type Runner struct {
	Client  ChatClient
	Actions map[string]Action

	// Exact disables automatic use of the best suggestion when a
	// component handle does not resolve.
	Exact bool

	Out  io.Writer
	Warn io.Writer
}

// RunSingle rewrites one component in place.
func (r *Runner) RunSingle(ctx context.Context, action string, ref ComponentRef) error {
	act, err := r.action(action)
	if err != nil {
		return err
	}

	handle, text, err := ReadComponent(ref.Project.ComponentsFolder, ref.Handle, r.Exact, r.Warn)
	if err != nil {
		return err
	}

	revised, err := r.Client.Chat(ctx, act.SystemPrompt.Content, userMessage(act, text))
	if err != nil {
		return err
	}
	return Overwrite(filepath.Join(ref.Project.ComponentsFolder, filepath.FromSlash(handle)), revised, r.Out)
}

// RunSourceDest reads a source component as input and rewrites the
// destination component.
func (r *Runner) RunSourceDest(ctx context.Context, action string, source, dest ComponentRef) error {
	act, err := r.action(action)
	if err != nil {
		return err
	}

	_, sourceText, err := ReadComponent(source.Project.ComponentsFolder, source.Handle, r.Exact, r.Warn)
	if err != nil {
		return err
	}
	destHandle, destText, err := ReadComponent(dest.Project.ComponentsFolder, dest.Handle, r.Exact, r.Warn)
	if err != nil {
		return err
	}

	user := userMessage(act, fmt.Sprintf("**INPUT**\n%s\n\n**TARGET**\n%s", sourceText, destText))
	revised, err := r.Client.Chat(ctx, act.SystemPrompt.Content, user)
	if err != nil {
		return err
	}
	return Overwrite(filepath.Join(dest.Project.ComponentsFolder, filepath.FromSlash(destHandle)), revised, r.Out)
}

// RunMultiInput reads any number of read-only input components plus one
// target component and rewrites the target. The combined message is
// allowed three times the single-component size budget.
func (r *Runner) RunMultiInput(ctx context.Context, action string, inputs []ComponentRef, target ComponentRef) error {
	act, err := r.action(action)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("action %q needs at least one input component", action)
	}

	var parts []string
	total := 0
	for i, in := range inputs {
		_, text, err := ReadComponent(in.Project.ComponentsFolder, in.Handle, r.Exact, r.Warn)
		if err != nil {
			return err
		}
		total += len(text)
		parts = append(parts, fmt.Sprintf("**INPUT %d**\n%s", i+1, text))
	}

	targetHandle, targetText, err := ReadComponent(target.Project.ComponentsFolder, target.Handle, r.Exact, r.Warn)
	if err != nil {
		return err
	}
	total += len(targetText)
	parts = append(parts, fmt.Sprintf("**TARGET**\n%s", targetText))

	if limit := SizeLimit * 3; total > limit {
		return fmt.Errorf("total message size (%d bytes) exceeds limit (%d bytes)", total, limit)
	}

	revised, err := r.Client.Chat(ctx, act.SystemPrompt.Content, userMessage(act, strings.Join(parts, "\n\n")))
	if err != nil {
		return err
	}
	return Overwrite(filepath.Join(target.Project.ComponentsFolder, filepath.FromSlash(targetHandle)), revised, r.Out)
}

func (r *Runner) action(name string) (Action, error) {
	act, ok := r.Actions[name]
	if !ok {
		return Action{}, fmt.Errorf("no agent action %q", name)
	}
	return act, nil
}

// userMessage prefixes the component text with the action's user prompt
// when one is defined.
func userMessage(act Action, text string) string {
	if act.UserPrompt.Content == "" {
		return text
	}
	return act.UserPrompt.Content + "\n\n" + text
}
