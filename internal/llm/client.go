package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	errx "github.com/buddyai-core/server/internal/core/error"
	logx "github.com/buddyai-core/server/pkg/logger"
)

// Config defines the chat-completion provider settings, sourced from env.
type Config struct {
	Provider     string  `envconfig:"LLM_PROVIDER" default:"openai"`
	APIKey       string  `envconfig:"OPENAI_API_KEY"`
	BaseURL      string  `envconfig:"OPENAI_BASE_URL"`
	GeminiAPIKey string  `envconfig:"GEMINI_API_KEY"`
	Model        string  `envconfig:"LLM_MODEL" default:"gpt-4o-mini"`
	Temperature  float32 `envconfig:"LLM_TEMPERATURE" default:"0.8"`
	MaxTokens    int     `envconfig:"LLM_MAX_TOKENS" default:"250"`

	Retry RetryConfig
}

// Client issues one chat-completion call. Implementations must return
// errors already classified as *errx.LLMError.
type Client interface {
	Generate(ctx context.Context, messages []*schema.Message) (*schema.Message, error)
}

// chatModelClient adapts an eino chat model to the Client interface and
// classifies its errors on the way out.
type chatModelClient struct {
	cm einomodel.BaseChatModel
}

func (c *chatModelClient) Generate(ctx context.Context, messages []*schema.Message) (*schema.Message, error) {
	out, err := c.cm.Generate(ctx, messages)
	if err != nil {
		return nil, errx.WrapLLM(err)
	}
	return out, nil
}

// NewClient builds the configured provider. A missing credential is a
// configuration error; the caller decides how to surface it.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	switch cfg.Provider {
	case "openai", "":
		return newOpenAIClient(ctx, cfg)
	case "gemini":
		return newGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

func newOpenAIClient(ctx context.Context, cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not configured")
	}

	temp := cfg.Temperature
	maxTokens := cfg.MaxTokens
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating OpenAI chat model")
		return nil, fmt.Errorf("error creating OpenAI chat model: %w", err)
	}
	return &chatModelClient{cm: cm}, nil
}

func newGeminiClient(ctx context.Context, cfg Config) (Client, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	temp := cfg.Temperature
	maxTokens := cfg.MaxTokens
	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model,
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini chat model")
		return nil, fmt.Errorf("error creating Gemini chat model: %w", err)
	}
	return &chatModelClient{cm: cm}, nil
}
