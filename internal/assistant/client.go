package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"knowledgehub/internal/config"
)

var ErrEmptyMessage = errors.New("message is required")

// Client calls a chat-completion endpoint with a single request/response
// exchange: system prompt, optional document context, user message in;
// free-text answer out.
type Client struct {
	baseURL      string
	apiKey       string
	model        string
	systemPrompt string
	httpClient   *http.Client
}

// NewClient builds an assistant client from configuration. The endpoint URL
// and HTTP client are injectable so tests can point at a local server.
func NewClient(cfg config.AssistantConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := time.Duration(cfg.TimeoutSec) * time.Second
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,
		httpClient:   httpClient,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends one chat-completion request. docContext, when non-empty, is
// injected as an extra system message ahead of the user message.
func (c *Client) Complete(ctx context.Context, docContext, userMessage string) (string, error) {
	if userMessage == "" {
		return "", ErrEmptyMessage
	}

	messages := []chatMessage{{Role: "system", Content: c.systemPrompt}}
	if docContext != "" {
		messages = append(messages, chatMessage{Role: "system", Content: "Document context:\n" + docContext})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userMessage})

	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read assistant response: %w", err)
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode assistant response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := "assistant endpoint returned " + resp.Status
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return "", errors.New(msg)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("assistant response contained no choices")
	}
	return out.Choices[0].Message.Content, nil
}
