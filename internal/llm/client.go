// Package llm provides dialogue-generation client interfaces and
// implementations.
package llm

import (
	"context"
	"regexp"
	"strings"
)

// Request is one dialogue-generation call. System carries the agent
// persona; Prompt carries the turn instruction and conversation context.
type Request struct {
	System      string
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Response is the generated utterance plus usage metadata.
type Response struct {
	Content   string
	Model     string
	TokensIn  int
	TokensOut int
	LatencyMs int64
}

// Client is the interface for dialogue-generation providers.
type Client interface {
	// Complete sends a generation request and returns the response.
	Complete(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name.
	Name() string
}

// Provider is the type of LLM provider.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// NewClient creates a new dialogue client based on provider.
func NewClient(provider Provider, apiKey string) (Client, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIClient(apiKey)
	default:
		return NewAnthropicClient(apiKey)
	}
}

var thinkTagRE = regexp.MustCompile(`(?s)◁think▷.*?◁/think▷|◁.*?▷`)

// CleanResponse strips reasoning-tag artifacts and squashes whitespace so
// each utterance is a single self-contained line.
func CleanResponse(text string) string {
	text = thinkTagRE.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}
