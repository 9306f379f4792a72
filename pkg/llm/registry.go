package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider keys accepted by New.
const (
	ProviderOpenAI    = "openai"
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
)

// Providers lists every supported provider key.
func Providers() []string {
	return []string{ProviderOpenAI, ProviderGroq, ProviderAnthropic, ProviderGemini, ProviderOllama}
}

// New builds the client for the configured provider. Unknown providers and
// missing credentials fail here, before any request is attempted. Every
// client is wrapped with metrics and tracing.
func New(cfg Config) (Client, error) {
	var (
		client Client
		err    error
	)

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderOpenAI:
		client, err = NewOpenAI(cfg)
	case ProviderGroq:
		client, err = NewGroq(cfg)
	case ProviderAnthropic:
		client, err = NewAnthropic(cfg)
	case ProviderGemini:
		client, err = NewGemini(cfg)
	case ProviderOllama:
		client, err = NewOllama(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}

	if err != nil {
		return nil, err
	}
	return instrument(client), nil
}

const probePrompt = "Respond with exactly: 'Connection successful'"

// Ping round-trips a fixed probe prompt to verify connectivity and
// credentials. Intended for use at startup.
func Ping(ctx context.Context, client Client) error {
	reply, err := client.Complete(ctx, probePrompt)
	if err != nil {
		return fmt.Errorf("ping %s: %w", client.Provider(), err)
	}
	if strings.TrimSpace(reply) == "" {
		return fmt.Errorf("ping %s: %w", client.Provider(), ErrEmptyReply)
	}
	return nil
}
