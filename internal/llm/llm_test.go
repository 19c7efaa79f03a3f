package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akhil-Baki/ai-study-pilot/config"
)

func tutorRequest() ChatRequest {
	return ChatRequest{
		System: []string{"You are a tutor.", "Reference content: chapter 3"},
		History: []Message{
			{Role: RoleUser, Content: "what is a graph?"},
			{Role: RoleAssistant, Content: "nodes and edges"},
		},
		Prompt: "and a tree?",
	}
}

func TestOpenAITranscript_ReferenceIsSecondSystemTurn(t *testing.T) {
	got := openAITranscript(tutorRequest())
	want := []Message{
		{Role: RoleSystem, Content: "You are a tutor."},
		{Role: RoleSystem, Content: "Reference content: chapter 3"},
		{Role: RoleUser, Content: "what is a graph?"},
		{Role: RoleAssistant, Content: "nodes and edges"},
		{Role: RoleUser, Content: "and a tree?"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, toOpenAIMessages(got), len(want))
}

func TestOpenAITranscript_SkipsEmptySystem(t *testing.T) {
	got := openAITranscript(ChatRequest{System: []string{""}, Prompt: "hi"})
	assert.Equal(t, []Message{{Role: RoleUser, Content: "hi"}}, got)
}

func TestGeminiContents_HistoryThenPrompt(t *testing.T) {
	req := tutorRequest()
	contents := geminiContents(req)
	require.Len(t, contents, 3)

	assert.Equal(t, "user", string(contents[0].Role))
	assert.Equal(t, "model", string(contents[1].Role))
	assert.Equal(t, "user", string(contents[2].Role))
	assert.Equal(t, "and a tree?", contents[2].Parts[0].Text)

	for _, c := range contents {
		assert.NotContains(t, c.Parts[0].Text, "chapter 3", "reference content must stay out of the turns")
	}
	assert.Equal(t, "You are a tutor.\n\nReference content: chapter 3", geminiSystemInstruction(req.System))
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), &config.LLMConfig{Provider: "claude"})
	assert.Error(t, err)
}

func TestNew_OpenAI(t *testing.T) {
	c, err := New(context.Background(), &config.LLMConfig{
		Provider: config.ProviderOpenAI,
		OpenAI:   config.ProviderConfig{APIKey: "sk-test", Model: "gpt-4o-mini"},
	})
	require.NoError(t, err)
	assert.Equal(t, "openai:gpt-4o-mini", c.Name())
}

func TestNewGemini_RequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), config.ProviderConfig{}, 0)
	assert.Error(t, err)
}

func TestFinish_Empty(t *testing.T) {
	_, err := finish("gemini", "  \n")
	assert.True(t, errors.Is(err, ErrEmptyResponse))

	text, err := finish("gemini", "ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}
