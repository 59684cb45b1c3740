// Package llm provides the chat-completion gateway used to generate
// tailored application materials.
package llm

import "time"

// Default completion parameters. The generation task wants creative but
// bounded output, hence the fixed sampling temperature.
const (
	DefaultBaseURL     = "https://api.openai.com/v1"
	DefaultModel       = "gpt-4o-mini"
	DefaultMaxTokens   = 3000
	DefaultTemperature = 0.7
	DefaultTimeout     = 30 * time.Second
)

// Config holds the completion endpoint parameters.
type Config struct {
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns the production configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		Model:       DefaultModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
		Timeout:     DefaultTimeout,
	}
}

// WithBaseURL returns a copy of the config pointed at a different
// endpoint. Used by tests to target a stub upstream.
func (c *Config) WithBaseURL(baseURL string) *Config {
	clone := *c
	clone.BaseURL = baseURL
	return &clone
}
