package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientBuildsOpenAIProvider(t *testing.T) {
	cfg := Config{
		Provider:    "openai",
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		Temperature: 0.8,
		MaxTokens:   250,
	}

	client, err := NewClient(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewClientDefaultsToOpenAI(t *testing.T) {
	client, err := NewClient(context.Background(), Config{APIKey: "test-key", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewClientRejectsMissingCredential(t *testing.T) {
	_, err := NewClient(context.Background(), Config{Provider: "openai"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	_, err = NewClient(context.Background(), Config{Provider: "gemini"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestNewClientRejectsUnknownProvider(t *testing.T) {
	_, err := NewClient(context.Background(), Config{Provider: "cohere"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}
