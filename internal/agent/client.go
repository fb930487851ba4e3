// Package agent wraps the conversational backend: an OpenAI-style
// chat-completion HTTP endpoint. The engine treats it as an opaque text
// source; nothing downstream depends on how the reply was produced.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Role values for chat messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn in the conversation, in the wire format the endpoint
// expects.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ErrNoReply indicates a well-formed response without assistant content.
var ErrNoReply = errors.New("agent: response carried no reply")

// Options tune the completion request.
type Options struct {
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Client calls the agent endpoint.
type Client struct {
	endpoint   string
	accessKey  string
	opts       Options
	httpClient *http.Client
}

// NewClient constructs a client for the given endpoint and access key.
func NewClient(endpoint, accessKey string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1000
	}
	return &Client{
		endpoint:  strings.TrimRight(endpoint, "/"),
		accessKey: accessKey,
		opts:      opts,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Stream      bool      `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Query sends the prompt plus prior history and returns the assistant's
// reply text. The request is all-or-nothing under the configured timeout;
// there are no retries.
func (c *Client) Query(ctx context.Context, prompt string, history []Message) (string, error) {
	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, Message{Role: RoleUser, Content: prompt})

	payload := completionRequest{
		// The agent ignores the model field; it routes on the endpoint.
		Model:       "n/a",
		Messages:    messages,
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
		Stream:      false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("agent request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("agent returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", ErrNoReply
	}
	return parsed.Choices[0].Message.Content, nil
}

// Ping checks that the endpoint answers a minimal completion request.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Query(ctx, "Hello", nil)
	return err
}
