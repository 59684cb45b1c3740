package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jonathan/job-tailor/internal/types"
)

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	apiKey     string
	config     *Config
	httpClient *http.Client
}

// NewClient builds a gateway client. The API key is required; callers
// are expected to check configuration before constructing one.
func NewClient(config *Config, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}
	return &Client{
		apiKey:     apiKey,
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	MaxTokens      int               `json:"max_tokens"`
	Temperature    float64           `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage types.Usage `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one system+user conversation and returns the parsed
// generation result. Failures are typed: *UpstreamError when the API
// call fails or returns no content, *ParseError when the model's output
// is not valid JSON. Missing result fields default to empty strings
// rather than failing.
func (c *Client) Complete(ctx context.Context, systemText, userText string) (*types.GenerationResult, error) {
	reqBody := chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemText},
			{Role: "user", Content: userText},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		MaxTokens:      c.config.MaxTokens,
		Temperature:    c.config.Temperature,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp chatResponse
	// Decode errors are ignored here on purpose: a non-JSON error body
	// still needs to surface as an upstream failure below.
	_ = json.Unmarshal(body, &apiResp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := "Unknown error"
		if apiResp.Error != nil && apiResp.Error.Message != "" {
			message = apiResp.Error.Message
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: message}
	}

	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Message.Content == "" {
		return nil, ErrNoContent
	}

	content := apiResp.Choices[0].Message.Content

	var parsed struct {
		TailoredResume string `json:"tailoredResume"`
		CoverLetter    string `json:"coverLetter"`
	}
	cleaned := cleanJSONBlock(content)
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, &ParseError{RawContent: content, Cause: err}
	}

	validateResultShape(cleaned)

	return &types.GenerationResult{
		TailoredResume: parsed.TailoredResume,
		CoverLetter:    parsed.CoverLetter,
		Usage:          apiResp.Usage,
	}, nil
}
