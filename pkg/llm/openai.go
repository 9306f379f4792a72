package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// ChatCompletionClient talks to any OpenAI-compatible chat completion
// endpoint. OpenAI and Groq share this implementation and differ only in
// base URL, default model, and provider label.
type ChatCompletionClient struct {
	client   *openai.Client
	provider string
	cfg      Config
	logger   zerolog.Logger
}

// NewOpenAI builds a client for the OpenAI chat completion API.
func NewOpenAI(cfg Config) (*ChatCompletionClient, error) {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return newChatCompletionClient("openai", cfg)
}

// NewGroq builds a client for Groq's OpenAI-compatible endpoint.
func NewGroq(cfg Config) (*ChatCompletionClient, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3-8b-8192"
	}
	return newChatCompletionClient("groq", cfg)
}

func newChatCompletionClient(provider string, cfg Config) (*ChatCompletionClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", provider, ErrMissingAPIKey)
	}
	cfg.applyDefaults()

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &ChatCompletionClient{
		client:   openai.NewClientWithConfig(clientConfig),
		provider: provider,
		cfg:      cfg,
		logger:   cfg.Logger.With().Str("component", "llm_"+provider).Logger(),
	}, nil
}

// Complete sends the prompt as a single user message and returns the reply.
func (c *ChatCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s complete: %w", c.provider, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", c.provider, ErrEmptyReply)
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("%s: %w", c.provider, ErrEmptyReply)
	}

	c.logger.Debug().Int("reply_length", len(reply)).Msg("chat completion succeeded")
	return reply, nil
}

// Provider reports the provider key this client was built for.
func (c *ChatCompletionClient) Provider() string { return c.provider }

// ModelName reports the configured model identifier.
func (c *ChatCompletionClient) ModelName() string { return c.cfg.Model }
