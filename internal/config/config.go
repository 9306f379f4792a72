package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/gradekit/gradekit-api/pkg/llm"
)

// Config holds runtime configuration values for the API service. All
// provider credentials live here; nothing else in the codebase reads the
// environment.
type Config struct {
	AppName string
	AppEnv  string
	AppPort string

	Provider        string
	Model           string
	OpenAIAPIKey    string
	GroqAPIKey      string
	AnthropicAPIKey string
	GeminiAPIKey    string
	OllamaURL       string

	MaxTokens       int
	Temperature     float32
	RequestTimeout  time.Duration
	PingOnStart     bool
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// DispatchEnabled reports whether a provider is configured. Without one the
// service still serves prompt composition, which needs no network.
func (c Config) DispatchEnabled() bool {
	return c.Provider != "" && c.Provider != "none"
}

// ClientConfig assembles the provider client configuration, selecting the
// credential that matches the configured provider. A missing required key is
// a configuration error, surfaced here before any request is attempted.
func (c Config) ClientConfig() (llm.Config, error) {
	cfg := llm.Config{
		Provider:    c.Provider,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		Timeout:     c.RequestTimeout,
	}

	switch c.Provider {
	case llm.ProviderOpenAI:
		cfg.APIKey = c.OpenAIAPIKey
	case llm.ProviderGroq:
		cfg.APIKey = c.GroqAPIKey
	case llm.ProviderAnthropic:
		cfg.APIKey = c.AnthropicAPIKey
	case llm.ProviderGemini:
		cfg.APIKey = c.GeminiAPIKey
	case llm.ProviderOllama:
		cfg.BaseURL = c.OllamaURL
	default:
		return llm.Config{}, fmt.Errorf("%w: %q", llm.ErrUnknownProvider, c.Provider)
	}

	if cfg.APIKey == "" && c.Provider != llm.ProviderOllama {
		return llm.Config{}, fmt.Errorf("provider %s: %w", c.Provider, llm.ErrMissingAPIKey)
	}

	return cfg, nil
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GRADEKIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "GradeKit API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("provider", "")
	v.SetDefault("ollama.url", "http://localhost:11434")
	v.SetDefault("max_tokens", 4000)
	v.SetDefault("temperature", 0.1)
	v.SetDefault("request_timeout", "60s")
	v.SetDefault("ping_on_start", false)
	v.SetDefault("rate_limit.max", 30)
	v.SetDefault("rate_limit.window", "1m")

	timeout, err := time.ParseDuration(v.GetString("request_timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid request timeout: %w", err)
	}

	window, err := time.ParseDuration(v.GetString("rate_limit.window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid rate limit window: %w", err)
	}

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          v.GetString("app.env"),
		AppPort:         v.GetString("app.port"),
		Provider:        strings.ToLower(v.GetString("provider")),
		Model:           v.GetString("model"),
		OpenAIAPIKey:    v.GetString("openai_api_key"),
		GroqAPIKey:      v.GetString("groq_api_key"),
		AnthropicAPIKey: v.GetString("anthropic_api_key"),
		GeminiAPIKey:    v.GetString("gemini_api_key"),
		OllamaURL:       v.GetString("ollama.url"),
		MaxTokens:       v.GetInt("max_tokens"),
		Temperature:     float32(v.GetFloat64("temperature")),
		RequestTimeout:  timeout,
		PingOnStart:     v.GetBool("ping_on_start"),
		RateLimitMax:    v.GetInt("rate_limit.max"),
		RateLimitWindow: window,
	}

	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4000
	}

	return cfg, nil
}
