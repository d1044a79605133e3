package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const assistantPersona = "You are Qyra, a helpful travel assistant. Provide travel-related advice, flight/hotel information, or travel tips based on the user's input. If the input is vague (e.g., 'hello'), suggest travel options like 'book_flight' or 'how can i book hotel'.  Keep responses concise (max 30 words for simple replies, longer for detailed options)."

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// LLMClient calls an OpenAI-compatible chat completions endpoint.
type LLMClient struct {
	URL     string
	APIKey  string
	Model   string
	Referer string
	Title   string
	HTTP    *http.Client
}

type LLMOptions struct {
	URL     string
	APIKey  string
	Model   string
	Referer string
	Title   string
	Timeout time.Duration
}

func NewLLMClient(opts LLMOptions) *LLMClient {
	return &LLMClient{
		URL:     opts.URL,
		APIKey:  opts.APIKey,
		Model:   opts.Model,
		Referer: opts.Referer,
		Title:   opts.Title,
		HTTP:    &http.Client{Timeout: opts.Timeout},
	}
}

// Complete sends message with the assistant persona as system prompt and
// returns the first choice, trimmed. An empty string means the provider
// answered without content.
func (c *LLMClient) Complete(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return "", fmt.Errorf("%w: no api key configured", ErrUpstreamAuth)
	}

	payload := chatCompletionRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: assistantPersona},
			{Role: "user", Content: message},
		},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("cannot encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if c.Referer != "" {
		req.Header.Set("HTTP-Referer", c.Referer)
	}
	if c.Title != "" {
		req.Header.Set("X-Title", c.Title)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request failed: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: HTTP %d", ErrUpstreamAuth, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", fmt.Errorf("%w: HTTP error %d: %s", ErrUpstream, resp.StatusCode, string(bodyBytes))
	}

	var out chatCompletionResponse
	if err := json.Unmarshal(bodyBytes, &out); err != nil {
		return "", fmt.Errorf("%w: JSON parse error: %v", ErrUpstream, err)
	}
	if len(out.Choices) == 0 {
		zap.L().Warn("llm answered without choices", zap.String("model", c.Model))
		return "", nil
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

var cannedReplies = map[string]string{
	"hello":                "Hi! I'm Qyra, your travel assistant. Try 'book _flight' or 'how can i book hotel'!",
	"book_flight":          "Flights: 1) DEL to BOM - $200, 2) DEL to BLR -  $250. Please provide more details to proceed!",
	"how can i book hotel": "To book a hotel, visit a site like Expedia or contact a travel agent. Let me know your location for options!",
}

// FallbackReply is what the assistant says when the provider is unavailable
// or returns nothing.
func FallbackReply(message string) string {
	key := strings.ToLower(strings.TrimSpace(message))
	if reply, ok := cannedReplies[key]; ok {
		return reply
	}
	return fmt.Sprintf("Sorry, I couldn't process '%s' with the model. Try 'book_flight' or 'how can i book hotel'!", message)
}
