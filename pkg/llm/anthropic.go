package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultMaxTokens = 1024

type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicClient(apiKey string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client:    &client,
		model:     anthropic.ModelClaude3_5HaikuLatest,
		modelName: "claude-3.5-haiku",
	}
}

func (c *AnthropicClient) Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error) {
	maxTokens := int64(defaultMaxTokens)
	if opts.MaxOutputTokens > 0 {
		maxTokens = int64(opts.MaxOutputTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if opts.Temperature > 0 {
		params.Temperature = anthropic.Float(opts.Temperature)
	}
	if opts.TopK > 0 {
		params.TopK = anthropic.Int(int64(opts.TopK))
	}
	if opts.TopP > 0 {
		params.TopP = anthropic.Float(opts.TopP)
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no response from anthropic")
	}

	return resp.Content[0].Text, nil
}
