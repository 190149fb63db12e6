// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package groq provides a stateless client for the Groq chat-completion API
(OpenAI-compatible wire format).

It performs exactly one request/response exchange per call: no retries, no
streaming. Resilience policies, if any, belong to a surrounding layer.

Core Responsibilities:

  - Serialization: Role-tagged messages are sent verbatim, order preserved.
  - Boundedness: Every call carries a hard timeout instead of hanging.
  - Secrecy: The API credential is held in memory only and never logged.
*/
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the Groq OpenAI-compatible API root.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// Fixed sampling parameters for the assistant workload.
const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 1024
)

// Message is one role-tagged entry in a chat-completion exchange.
//
// Role is a plain string here because this is the wire boundary; the domain
// layer owns the closed role enum and converts at the edge.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ErrEmptyResponse is returned when the provider answers 2xx but the body
// contains no completion choices.
var ErrEmptyResponse = errors.New("groq: response contained no choices")

// APIError describes a non-2xx response from the provider.
//
// The body is retained for server-side diagnostics only — handlers must map
// this to a generic "AI unavailable" message before it reaches a client.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("groq: upstream returned status %d: %s", e.StatusCode, e.Body)
}

// Config holds the per-process client configuration.
type Config struct {
	// APIKey is the bearer credential. Must be non-empty.
	APIKey string
	// Model is the chat-completion model identifier.
	Model string
	// BaseURL overrides the API root, mainly for tests.
	BaseURL string
	// Timeout bounds every call. Zero falls back to 30s.
	Timeout time.Duration
}

// Client issues single-shot chat-completion calls.
//
// # Concurrency
//
// The client is immutable after construction and safe for unsynchronized
// concurrent use across requests.
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

// NewClient constructs a Groq client from configuration.
//
// A missing credential is a construction-time failure: the caller is expected
// to run without AI features rather than retry later.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq: API key is not configured")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    baseURL,
	}, nil
}

// Model reports the configured model identifier.
func (client *Client) Model() string {
	return client.model
}

// Wire-format structures for the chat-completion endpoint.

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

/*
Chat performs one chat-completion round trip and returns the first choice.

Description: Serializes the message sequence verbatim (system message, if
present, must already be first) and blocks until the provider answers or the
timeout fires.

Parameters:
  - context: context.Context
  - messages: []Message (ordered, role-tagged)

Returns:
  - string: Content of the first completion choice
  - error: Transport failure, *APIError, decode failure, or ErrEmptyResponse
*/
func (client *Client) Chat(context context.Context, messages []Message) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       client.model,
		Messages:    messages,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("groq: failed to encode request: %w", err)
	}

	request, err := http.NewRequestWithContext(context, http.MethodPost, client.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("groq: failed to build request: %w", err)
	}

	request.Header.Set("Authorization", "Bearer "+client.apiKey)
	request.Header.Set("Content-Type", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("groq: request failed: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(response.Body, 4096))
		return "", &APIError{StatusCode: response.StatusCode, Body: string(body)}
	}

	var decoded chatResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("groq: failed to decode response: %w", err)
	}

	if len(decoded.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return decoded.Choices[0].Message.Content, nil
}
