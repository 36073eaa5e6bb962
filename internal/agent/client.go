// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

const (
	defaultModel      = "gpt-4o"
	defaultMaxRetries = 3
	defaultRetryDelay = 2 * time.Second
)

// ChatClient sends one system+user exchange and returns the assistant's
// text. Tests substitute a fake; production uses the OpenAI client below.
type ChatClient interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

// OpenAIClient implements ChatClient against the OpenAI chat completions
// API with retry on transient failures.
type OpenAIClient struct {
	client   openai.Client
	model    string
	attempts uint
	delay    time.Duration
}

// NewOpenAIClient builds a client from the agent configuration. The API
// key must already be resolved (secrets file or environment).
func NewOpenAIClient(cfg types.AgentConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no OpenAI API key found: put one in .secrets/openai-api-key or set OPENAI_API_KEY")
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	attempts := cfg.MaxRetries
	if attempts <= 0 {
		attempts = defaultMaxRetries
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	return &OpenAIClient{
		client:   openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:    model,
		attempts: uint(attempts),
		delay:    delay,
	}, nil
}

// Chat performs the completion call, retrying with a fixed delay. A
// response with no choices is not retried; it indicates an API contract
// problem rather than a transient failure.
func (c *OpenAIClient) Chat(ctx context.Context, system, user string) (string, error) {
	var content string
	err := retry.Do(
		func() error {
			resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
				Model: openai.ChatModel(c.model),
				Messages: []openai.ChatCompletionMessageParamUnion{
					openai.SystemMessage(system),
					openai.UserMessage(user),
				},
			})
			if err != nil {
				return err
			}
			if len(resp.Choices) == 0 {
				return retry.Unrecoverable(fmt.Errorf("chat completion returned no choices"))
			}
			content = resp.Choices[0].Message.Content
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	return content, nil
}
