// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assistant

import (
	"context"
	"time"

	"github.com/taibuivan/lumo/internal/core/expense"
	"github.com/taibuivan/lumo/internal/core/task"
	"github.com/taibuivan/lumo/internal/platform/groq"
)

// # Storage Contracts

// MessageRepository defines the storage contract for the conversation log.
type MessageRepository interface {
	// ListRecent returns the owner's most recent turns, newest first,
	// capped at limit.
	ListRecent(context context.Context, userID string, limit int) ([]*ChatMessage, error)

	// Create appends a turn to the owner's conversation log.
	Create(context context.Context, message *ChatMessage) error
}

// SuggestionCache is a volatile store for generated suggestions.
//
// A cache is best-effort: implementations may lose entries at any time and
// callers must treat every miss as "generate again".
type SuggestionCache interface {
	// Get returns the cached suggestion for a user, and whether one exists.
	Get(context context.Context, userID string) (string, bool, error)

	// Set stores a suggestion for a user with the given TTL.
	Set(context context.Context, userID string, suggestion string, ttl time.Duration) error
}

// # Upstream Contracts

// ChatCompleter is the single-shot chat completion transport.
//
// Decoupling the service from the concrete HTTP client keeps the
// orchestration logic testable without a network.
type ChatCompleter interface {
	Chat(context context.Context, messages []groq.Message) (string, error)
}

// TaskSource supplies the owner's full task list for prompt assembly.
type TaskSource interface {
	ListAll(context context.Context, userID string) ([]*task.Task, error)
}

// ExpenseSource supplies the owner's spending summary for prompt assembly.
type ExpenseSource interface {
	Summarize(context context.Context, userID string) (*expense.Summary, error)
}
