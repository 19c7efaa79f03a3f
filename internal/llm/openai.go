package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/Akhil-Baki/ai-study-pilot/config"
)

// OpenAI adapter over the chat completions API
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates an OpenAI client. Retries are disabled: every call is attempted once.
func NewOpenAI(cfg config.ProviderConfig, timeout time.Duration) *OpenAI {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o"
	}

	return &OpenAI{client: openai.NewClient(opts...), model: model}
}

// Name provider name
func (o *OpenAI) Name() string { return "openai:" + o.model }

// GenerateContent single-shot completion
func (o *OpenAI) GenerateContent(ctx context.Context, req GenerateRequest) (string, error) {
	var system []string
	if req.System != "" {
		system = []string{req.System}
	}
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: toOpenAIMessages(openAITranscript(ChatRequest{System: system, Prompt: req.Prompt})),
	}
	if req.Deterministic {
		params.Temperature = openai.Float(deterministicTemperature)
		params.TopP = openai.Float(deterministicTopP)
	}
	if req.JSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}
	return o.complete(ctx, params)
}

// SendMessage chat completion over the tutor transcript
func (o *OpenAI) SendMessage(ctx context.Context, req ChatRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: toOpenAIMessages(openAITranscript(req)),
	}
	return o.complete(ctx, params)
}

func (o *OpenAI) complete(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}
	return finish("openai", resp.Choices[0].Message.Content)
}

// openAITranscript system turns first, then history, then the prompt
func openAITranscript(req ChatRequest) []Message {
	out := make([]Message, 0, len(req.System)+len(req.History)+1)
	for _, s := range req.System {
		if s != "" {
			out = append(out, Message{Role: RoleSystem, Content: s})
		}
	}
	out = append(out, req.History...)
	return append(out, Message{Role: RoleUser, Content: req.Prompt})
}

func toOpenAIMessages(transcript []Message) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(transcript))
	for _, m := range transcript {
		switch m.Role {
		case RoleSystem:
			msgs = append(msgs, openai.SystemMessage(m.Content))
		case RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}
	return msgs
}
