// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package groq_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lumo/internal/platform/groq"
)

// newTestClient wires a client against an httptest server.
func newTestClient(t *testing.T, handler http.HandlerFunc) *groq.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := groq.NewClient(groq.Config{
		APIKey:  "test-key",
		Model:   "llama-3.3-70b-versatile",
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	})
	require.NoError(t, err)

	return client
}

/*
TestClient_Chat_Success verifies request serialization and first-choice
extraction.
*/
func TestClient_Chat_Success(t *testing.T) {
	var captured struct {
		Model    string         `json:"model"`
		Messages []groq.Message `json:"messages"`
	}
	var requestCount int

	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		requestCount++

		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/chat/completions", request.URL.Path)
		assert.Equal(t, "Bearer test-key", request.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(request.Body).Decode(&captured))

		_, _ = writer.Write([]byte(`{"choices":[{"message":{"content":"first"}},{"message":{"content":"second"}}]}`))
	})

	messages := []groq.Message{
		{Role: "system", Content: "You are helpful."},
		{Role: "user", Content: "Hello"},
		{Role: "assistant", Content: "Hi"},
		{Role: "user", Content: "Bye"},
	}

	content, err := client.Chat(context.Background(), messages)
	require.NoError(t, err)

	// First choice is used, later choices ignored.
	assert.Equal(t, "first", content)

	// Exactly one round trip, order preserved, system message first.
	assert.Equal(t, 1, requestCount)
	assert.Equal(t, "llama-3.3-70b-versatile", captured.Model)
	require.Len(t, captured.Messages, 4)
	assert.Equal(t, messages, captured.Messages)
}

/*
TestClient_Chat_UpstreamError verifies that non-2xx responses surface status
and body without retrying.
*/
func TestClient_Chat_UpstreamError(t *testing.T) {
	var requestCount int

	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		requestCount++
		writer.WriteHeader(http.StatusTooManyRequests)
		_, _ = writer.Write([]byte(`{"error":"rate limit"}`))
	})

	content, err := client.Chat(context.Background(), []groq.Message{{Role: "user", Content: "hi"}})
	assert.Empty(t, content)

	var apiErr *groq.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "rate limit")

	// No retry on failure.
	assert.Equal(t, 1, requestCount)
}

/*
TestClient_Chat_EmptyChoices verifies the empty-completion error case.
*/
func TestClient_Chat_EmptyChoices(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"choices":[]}`))
	})

	content, err := client.Chat(context.Background(), []groq.Message{{Role: "user", Content: "hi"}})
	assert.Empty(t, content)
	assert.ErrorIs(t, err, groq.ErrEmptyResponse)
}

/*
TestClient_Chat_MalformedBody verifies that undecodable success responses fail
cleanly.
*/
func TestClient_Chat_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{not json`))
	})

	content, err := client.Chat(context.Background(), []groq.Message{{Role: "user", Content: "hi"}})
	assert.Empty(t, content)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, groq.ErrEmptyResponse)
}

/*
TestClient_Chat_Timeout verifies the bounded-wait hardening: a stalled
upstream fails instead of hanging.
*/
func TestClient_Chat_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	client, err := groq.NewClient(groq.Config{
		APIKey:  "test-key",
		Model:   "llama-3.3-70b-versatile",
		BaseURL: server.URL,
		Timeout: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	start := time.Now()
	_, err = client.Chat(context.Background(), []groq.Message{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

/*
TestNewClient_MissingKey verifies that construction fails without a credential.
*/
func TestNewClient_MissingKey(t *testing.T) {
	client, err := groq.NewClient(groq.Config{Model: "llama-3.3-70b-versatile"})
	assert.Nil(t, client)
	assert.Error(t, err)
}
