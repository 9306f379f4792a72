// Package llm provides a uniform "send prompt, receive text" contract over
// several LLM provider APIs. Each call is a single best-effort attempt; there
// is no retry or backoff, and failures propagate to the caller unmodified.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Client sends a composed prompt to one provider and returns the raw reply.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Provider() string
	ModelName() string
}

// Config describes one provider client. API keys are passed explicitly; the
// package never reads the environment itself.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
	Logger      zerolog.Logger
}

// Configuration errors, surfaced before any request is attempted.
var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrMissingAPIKey   = errors.New("api key is required")
)

// Provider call errors. Raw HTTP clients wrap these so callers can
// distinguish auth rejections and rate limits from plain connectivity
// failures.
var (
	ErrAuthentication = errors.New("authentication rejected")
	ErrRateLimited    = errors.New("rate limited")
	ErrEmptyReply     = errors.New("provider returned an empty reply")
)

const (
	defaultTimeout     = 60 * time.Second
	defaultMaxTokens   = 4000
	defaultTemperature = 0.1
)

func (c *Config) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.Temperature == 0 {
		c.Temperature = defaultTemperature
	}
}

func statusError(provider string, status int, body string) error {
	switch status {
	case 401, 403:
		return fmt.Errorf("%s: %w: status %d: %s", provider, ErrAuthentication, status, body)
	case 429:
		return fmt.Errorf("%s: %w: status %d: %s", provider, ErrRateLimited, status, body)
	default:
		return fmt.Errorf("%s: unexpected status %d: %s", provider, status, body)
	}
}
