package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is a provider-neutral chat completion request
type CompletionRequest struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
	JSONMode    bool
}

// ChatCompleter returns the text of the single best completion for a request
type ChatCompleter interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Request represents a request to an OpenAI-compatible chat completions API
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
}

// Default endpoints and models per provider
const (
	OpenAIURL     = "https://api.openai.com/v1/chat/completions"
	OpenAIModel   = "gpt-4o-mini"
	DeepSeekURL   = "https://api.deepseek.com/v1/chat/completions"
	DeepSeekModel = "deepseek-chat"
)

// HTTPCompleter talks to OpenAI or DeepSeek style chat completion endpoints
type HTTPCompleter struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

var _ ChatCompleter = (*HTTPCompleter)(nil)

// NewHTTPCompleter creates a completer. An empty key is accepted here and
// reported as ErrMissingCredential on the first call.
func NewHTTPCompleter(apiKey, apiURL, model string) *HTTPCompleter {
	if apiURL == "" {
		apiURL = OpenAIURL
	}
	if model == "" {
		model = OpenAIModel
	}
	return &HTTPCompleter{
		apiKey: strings.TrimSpace(apiKey),
		apiURL: apiURL,
		model:  model,
		client: &http.Client{},
	}
}

// Complete sends the request and returns choices[0].message.content
func (c *HTTPCompleter) Complete(ctx context.Context, creq CompletionRequest) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingCredential
	}

	reqBody := Request{
		Model:       c.model,
		Messages:    creq.Messages,
		Temperature: creq.Temperature,
		MaxTokens:   creq.MaxTokens,
	}
	if creq.JSONMode {
		reqBody.ResponseFormat = map[string]string{
			"type": "json_object",
		}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	log.Printf("[LLM] %s responded %d in %v", c.model, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return "", &TransportError{StatusCode: resp.StatusCode, Err: errors.New(apiErrorMessage(body))}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return "", &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if len(result.Choices) == 0 {
		return "", &TransportError{StatusCode: resp.StatusCode, Err: ErrEmptyCompletion}
	}

	return result.Choices[0].Message.Content, nil
}

func apiErrorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return strings.TrimSpace(string(body))
}
