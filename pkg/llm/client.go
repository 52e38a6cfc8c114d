package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// CompleteOptions carry the generation parameters the upstream services
// accept. Zero values mean "provider default".
type CompleteOptions struct {
	Temperature     float64
	TopK            int
	TopP            float64
	MaxOutputTokens int
}

// Completer is the generative-text service boundary. The response has
// no structural contract; callers impose their own parsing.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error)
}

// NewCompleterFromEnv picks Anthropic when ANTHROPIC_API_KEY is set,
// otherwise OpenAI.
func NewCompleterFromEnv() (Completer, error) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return NewAnthropicClient(key), nil
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return NewOpenAIClient(key), nil
	}
	return nil, fmt.Errorf("no generative service API key configured")
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
