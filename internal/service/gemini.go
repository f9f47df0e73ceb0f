package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiModel is the default Gemini model for completions
const GeminiModel = "gemini-1.5-flash"

// GeminiCompleter serves completions from Google Gemini
type GeminiCompleter struct {
	apiKey string
	model  string
	opts   []option.ClientOption
}

var _ ChatCompleter = (*GeminiCompleter)(nil)

// NewGeminiCompleter creates a Gemini completer. Extra client options are
// appended after the API key.
func NewGeminiCompleter(apiKey, model string, opts ...option.ClientOption) *GeminiCompleter {
	if model == "" {
		model = GeminiModel
	}
	return &GeminiCompleter{apiKey: strings.TrimSpace(apiKey), model: model, opts: opts}
}

// Complete maps the system message onto the system instruction and replays
// the remaining turns as chat history.
func (g *GeminiCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingCredential
	}

	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(g.apiKey)}, g.opts...)...)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("failed to create Gemini client: %w", err)}
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(float32(req.Temperature))
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.JSONMode {
		model.ResponseMIMEType = "application/json"
	}

	var history []*genai.Content
	var last string
	for i, m := range req.Messages {
		switch {
		case m.Role == "system":
			model.SystemInstruction = genai.NewUserContent(genai.Text(m.Content))
		case i == len(req.Messages)-1:
			last = m.Content
		default:
			role := "user"
			if m.Role == "assistant" {
				role = "model"
			}
			history = append(history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
		}
	}

	session := model.StartChat()
	session.History = history
	resp, err := session.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("failed to generate content: %w", err)}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &TransportError{Err: ErrEmptyCompletion}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", &TransportError{Err: ErrEmptyCompletion}
	}
	return sb.String(), nil
}

// NewCompleter picks a completer for the configured provider
func NewCompleter(provider, apiKey, apiURL, model string) ChatCompleter {
	switch strings.ToLower(provider) {
	case "gemini":
		return NewGeminiCompleter(apiKey, model)
	case "deepseek":
		if apiURL == "" {
			apiURL = DeepSeekURL
		}
		if model == "" {
			model = DeepSeekModel
		}
		return NewHTTPCompleter(apiKey, apiURL, model)
	default:
		return NewHTTPCompleter(apiKey, apiURL, model)
	}
}
