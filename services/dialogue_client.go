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

	"travel-backend/utils"

	"go.uber.org/zap"
)

// BotMessage is one element of the dialogue engine's REST channel answer.
type BotMessage struct {
	RecipientID string          `json:"recipient_id,omitempty"`
	Text        string          `json:"text,omitempty"`
	Image       string          `json:"image,omitempty"`
	Buttons     []utils.Button  `json:"buttons,omitempty"`
	Custom      json.RawMessage `json:"custom,omitempty"`
}

// DialogueClient talks to the dialogue engine's REST webhook
// (POST .../webhooks/rest/webhook with {sender, message}).
type DialogueClient struct {
	URL  string
	HTTP *http.Client
}

func NewDialogueClient(url string, timeout time.Duration) *DialogueClient {
	return &DialogueClient{
		URL:  url,
		HTTP: &http.Client{Timeout: timeout},
	}
}

// WithTimeout returns a copy of the client using a different timeout.
func (c *DialogueClient) WithTimeout(timeout time.Duration) *DialogueClient {
	return &DialogueClient{URL: c.URL, HTTP: &http.Client{Timeout: timeout, Transport: c.HTTP.Transport}}
}

// Send forwards one user message and returns the engine's replies. Transport
// failures and non-2xx answers are ErrUpstream. There is no retry.
func (c *DialogueClient) Send(ctx context.Context, sender, message string) ([]BotMessage, error) {
	payload := map[string]string{
		"sender":  sender,
		"message": message,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("cannot encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: HTTP error %d: %s", ErrUpstream, resp.StatusCode, string(bodyBytes))
	}

	var messages []BotMessage
	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		return messages, nil
	}
	if err := json.Unmarshal(bodyBytes, &messages); err != nil {
		return nil, fmt.Errorf("%w: JSON parse error: %v", ErrUpstream, err)
	}
	zap.L().Debug("dialogue engine replied", zap.String("sender", sender), zap.Int("messages", len(messages)))
	return messages, nil
}

// DialogueReply is the engine's answer folded into the chat envelope.
type DialogueReply struct {
	Text    string
	Buttons []utils.Button
	Custom  json.RawMessage
}

// Aggregate joins every text segment with a space and keeps the first buttons
// and the first custom payload found. fallback is used when no text came back.
func Aggregate(messages []BotMessage, fallback string) DialogueReply {
	var out DialogueReply
	texts := make([]string, 0, len(messages))
	for _, m := range messages {
		texts = append(texts, m.Text)
		if out.Buttons == nil && m.Buttons != nil {
			out.Buttons = m.Buttons
		}
		if out.Custom == nil && len(m.Custom) > 0 && string(m.Custom) != "null" {
			out.Custom = m.Custom
		}
	}
	out.Text = strings.TrimSpace(strings.Join(texts, " "))
	if out.Text == "" {
		out.Text = fallback
	}
	if out.Buttons == nil {
		out.Buttons = []utils.Button{}
	}
	return out
}
