package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/Akhil-Baki/ai-study-pilot/config"
)

// Gemini adapter over the Google GenAI SDK
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini client
func NewGemini(ctx context.Context, cfg config.ProviderConfig, timeout time.Duration) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-pro"
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{client: client, model: model, timeout: timeout}, nil
}

// Name provider name
func (g *Gemini) Name() string { return "gemini:" + g.model }

var geminiSafetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
}

// GenerateContent single-shot generation
func (g *Gemini) GenerateContent(ctx context.Context, req GenerateRequest) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Deterministic {
		cfg.Temperature = genai.Ptr[float32](deterministicTemperature)
		cfg.TopP = genai.Ptr[float32](deterministicTopP)
		cfg.TopK = genai.Ptr[float32](deterministicTopK)
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}

	contents := []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}
	return g.generate(ctx, contents, cfg)
}

// SendMessage chat turn; System becomes the system instruction, History the prior contents
func (g *Gemini) SendMessage(ctx context.Context, req ChatRequest) (string, error) {
	cfg := &genai.GenerateContentConfig{SafetySettings: geminiSafetySettings}
	if sys := geminiSystemInstruction(req.System); sys != "" {
		cfg.SystemInstruction = genai.NewContentFromText(sys, genai.RoleUser)
	}
	return g.generate(ctx, geminiContents(req), cfg)
}

func (g *Gemini) generate(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return finish("gemini", resp.Text())
}

func geminiSystemInstruction(system []string) string {
	parts := make([]string, 0, len(system))
	for _, s := range system {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// geminiContents history in order followed by the new prompt; assistant turns map to the model role
func geminiContents(req ChatRequest) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, m := range req.History {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))
}
