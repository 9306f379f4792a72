package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OllamaClient talks to a local Ollama server. It is the only provider that
// needs no API key; a model name is enough.
type OllamaClient struct {
	cfg   Config
	httpc *http.Client
}

// NewOllama builds a client for a local Ollama instance.
func NewOllama(cfg Config) (*OllamaClient, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama: model name is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	cfg.applyDefaults()

	return &OllamaClient{
		cfg:   cfg,
		httpc: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// Complete sends the prompt to /api/generate and returns the reply text.
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(ollamaRequest{
		Model:  c.cfg.Model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("ollama: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ollama: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", statusError("ollama", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded ollamaResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("ollama: decode response: %w", err)
	}

	reply := strings.TrimSpace(decoded.Response)
	if reply == "" {
		return "", fmt.Errorf("ollama: %w", ErrEmptyReply)
	}
	return reply, nil
}

// Provider reports "ollama".
func (c *OllamaClient) Provider() string { return "ollama" }

// ModelName reports the configured model identifier.
func (c *OllamaClient) ModelName() string { return c.cfg.Model }
