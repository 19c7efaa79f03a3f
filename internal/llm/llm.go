// Package llm adapts hosted language-model APIs to one narrow capability interface.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Akhil-Baki/ai-study-pilot/config"
)

// ErrEmptyResponse the provider answered without any text
var ErrEmptyResponse = errors.New("llm returned an empty response")

// Role speaker of a conversation turn
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message one conversation turn
type Message struct {
	Role    Role
	Content string
}

// GenerateRequest single-shot prompt
type GenerateRequest struct {
	System string
	Prompt string
	// JSON asks the provider for a JSON-only answer where it supports that mode.
	JSON bool
	// Deterministic selects the low-temperature sampling used for structured extraction.
	Deterministic bool
}

// ChatRequest conversational prompt with prior turns
type ChatRequest struct {
	// System out-of-band instructions in order; never mixed into History.
	System  []string
	History []Message
	Prompt  string
}

// Client hosted model capability consumed by the generators
type Client interface {
	GenerateContent(ctx context.Context, req GenerateRequest) (string, error)
	SendMessage(ctx context.Context, req ChatRequest) (string, error)
	Name() string
}

// Sampling parameters for deterministic requests
const (
	deterministicTemperature = 0.2
	deterministicTopP        = 0.8
	deterministicTopK        = 40
)

// New builds the client for the configured provider
func New(ctx context.Context, cfg *config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGemini(ctx, cfg.Gemini, cfg.Timeout)
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.OpenAI, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

func finish(provider, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s: %w", provider, ErrEmptyResponse)
	}
	return text, nil
}
