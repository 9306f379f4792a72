package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient talks to the Google Generative AI API. The underlying SDK
// client is opened per call so a dropped connection never poisons later
// requests.
type GeminiClient struct {
	cfg Config
}

// NewGemini builds a client for the Gemini generative language API.
func NewGemini(cfg Config) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	cfg.applyDefaults()

	return &GeminiClient{cfg: cfg}, nil
}

// Complete sends the prompt and concatenates the text parts of the first
// candidate reply.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.cfg.APIKey))
	if err != nil {
		return "", fmt.Errorf("gemini: create client: %w", err)
	}
	defer client.Close()

	temperature := c.cfg.Temperature
	maxTokens := int32(c.cfg.MaxTokens)

	model := client.GenerativeModel(c.cfg.Model)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     &temperature,
		MaxOutputTokens: &maxTokens,
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: %w", ErrEmptyReply)
	}

	b := strings.Builder{}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	reply := strings.TrimSpace(b.String())
	if reply == "" {
		return "", fmt.Errorf("gemini: %w", ErrEmptyReply)
	}
	return reply, nil
}

// Provider reports "gemini".
func (c *GeminiClient) Provider() string { return "gemini" }

// ModelName reports the configured model identifier.
func (c *GeminiClient) ModelName() string { return c.cfg.Model }
