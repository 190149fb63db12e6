// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package assistant implements the AI layer of the platform.

It turns a user's stored tasks, expenses, and conversation history into
chat-completion prompts, relays them to the upstream model, and persists
the resulting conversation turns.

Architecture:

  - Service: Orchestrates context gathering, prompt assembly, and persistence.
  - Prompt assembly: Pure functions over data snapshots (see prompt.go).
  - ChatCompleter: Abstracted transport; nil means AI features are disabled.
  - SuggestionCache: Optional Redis-backed cache for the suggest endpoint.

Degradation is a first-class state: when no upstream credential is configured
the service is constructed without a completer and every AI operation
returns 503 instead of failing at startup.
*/
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/lumo/internal/core/task"
	"github.com/taibuivan/lumo/internal/platform/apperr"
	"github.com/taibuivan/lumo/internal/platform/groq"
	"github.com/taibuivan/lumo/pkg/uuid"
)

const (
	// ChatHistoryLimit caps how many stored turns are replayed into the
	// upstream context window.
	ChatHistoryLimit = 10

	// SuggestionCacheTTL is how long a generated suggestion stays fresh.
	SuggestionCacheTTL = 5 * time.Minute
)

// Service implements the assistant use cases.
type Service struct {
	messages  MessageRepository
	tasks     TaskSource
	expenses  ExpenseSource
	completer ChatCompleter
	cache     SuggestionCache
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs a new [Service].
//
// completer may be nil when no upstream credential is configured; every AI
// operation then degrades to a 503. cache may be nil to disable suggestion
// caching.
func NewService(
	messages MessageRepository,
	tasks TaskSource,
	expenses ExpenseSource,
	completer ChatCompleter,
	cache SuggestionCache,
	logger *slog.Logger,
) *Service {
	return &Service{
		messages:  messages,
		tasks:     tasks,
		expenses:  expenses,
		completer: completer,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
}

// available guards every AI operation behind the presence of a completer.
func (service *Service) available() error {
	if service.completer == nil {
		return apperr.ServiceUnavailable("AI features disabled")
	}
	return nil
}

// complete relays a system+user prompt pair to the upstream model.
func (service *Service) complete(context context.Context, systemPrompt, userPrompt string) (string, error) {
	reply, err := service.completer.Chat(context, []groq.Message{
		{Role: RoleSystem.String(), Content: systemPrompt},
		{Role: RoleUser.String(), Content: userPrompt},
	})
	if err != nil {
		return "", service.wrapUpstream(context, err)
	}
	return reply, nil
}

// wrapUpstream logs the raw upstream failure and converts it into a
// client-safe 503. Upstream status codes and bodies never reach clients.
func (service *Service) wrapUpstream(context context.Context, err error) error {
	service.logger.ErrorContext(context, "assistant_upstream_failed",
		slog.String("error", err.Error()),
	)
	return apperr.ServiceUnavailable("AI assistant is temporarily unavailable")
}

/*
Suggest generates a next-action suggestion from the user's current state.

Description: Embeds the current time, the full task list, and the spending
summary into a fixed prompt. Fresh results are cached per user; a repeat
call within [SuggestionCacheTTL] is served from cache with zero upstream
calls. Cache failures are logged and ignored.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - string: Suggestion text
  - error: 503 when AI is disabled or the upstream call fails
*/
func (service *Service) Suggest(context context.Context, userID string) (string, error) {
	if err := service.available(); err != nil {
		return "", err
	}

	if service.cache != nil {
		cached, ok, err := service.cache.Get(context, userID)
		if err != nil {
			service.logger.WarnContext(context, "assistant_suggestion_cache_get_failed",
				slog.String("error", err.Error()),
			)
		} else if ok {
			return cached, nil
		}
	}

	tasks, err := service.tasks.ListAll(context, userID)
	if err != nil {
		return "", fmt.Errorf("assistant_service_load_tasks_failed: %w", err)
	}

	summary, err := service.expenses.Summarize(context, userID)
	if err != nil {
		return "", fmt.Errorf("assistant_service_load_expenses_failed: %w", err)
	}

	suggestion, err := service.complete(context, suggestSystemPrompt,
		buildSuggestPrompt(service.now(), tasks, summary))
	if err != nil {
		return "", err
	}

	if service.cache != nil {
		if err := service.cache.Set(context, userID, suggestion, SuggestionCacheTTL); err != nil {
			service.logger.WarnContext(context, "assistant_suggestion_cache_set_failed",
				slog.String("error", err.Error()),
			)
		}
	}

	return suggestion, nil
}

/*
AnalyzeBudget produces a short financial analysis of the user's spending.

Description: Zero recorded expenses short-circuit with a canned message and
no upstream call. Otherwise the total and per-category breakdown are
embedded into the advisor prompt.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - string: Analysis text (or the canned empty-state message)
  - error: 503 when AI is disabled or the upstream call fails
*/
func (service *Service) AnalyzeBudget(context context.Context, userID string) (string, error) {
	if err := service.available(); err != nil {
		return "", err
	}

	summary, err := service.expenses.Summarize(context, userID)
	if err != nil {
		return "", fmt.Errorf("assistant_service_load_expenses_failed: %w", err)
	}

	if len(summary.Categories) == 0 {
		return msgNoExpensesToAnalyze, nil
	}

	return service.complete(context, budgetSystemPrompt, buildBudgetPrompt(summary))
}

/*
PrioritizeTasks suggests an execution order for the user's pending tasks.

Description: Completed tasks are filtered out first. Zero pending tasks
short-circuit with a canned message and no upstream call.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - string: Prioritization text (or the canned empty-state message)
  - error: 503 when AI is disabled or the upstream call fails
*/
func (service *Service) PrioritizeTasks(context context.Context, userID string) (string, error) {
	if err := service.available(); err != nil {
		return "", err
	}

	tasks, err := service.tasks.ListAll(context, userID)
	if err != nil {
		return "", fmt.Errorf("assistant_service_load_tasks_failed: %w", err)
	}

	var pending []*task.Task
	for _, t := range tasks {
		if !t.Completed {
			pending = append(pending, t)
		}
	}

	if len(pending) == 0 {
		return msgAllTasksCompleted, nil
	}

	return service.complete(context, prioritizeSystemPrompt,
		buildPrioritizePrompt(service.now(), pending))
}

/*
Chat relays a free-form message with recent conversation context.

Description: Loads the last [ChatHistoryLimit] turns (stored newest first),
reverses them to chronological order, and assembles the upstream payload as
exactly one system message at position 0, the replayed history, then the
new user message. On success the user turn is persisted before the
assistant turn so the log always replays in causal order.

Parameters:
  - context: context.Context
  - userID: string
  - message: string (the user's new message)

Returns:
  - string: The assistant's reply
  - error: 503 when AI is disabled or the upstream call fails, or storage errors
*/
func (service *Service) Chat(context context.Context, userID, message string) (string, error) {
	if err := service.available(); err != nil {
		return "", err
	}

	history, err := service.messages.ListRecent(context, userID, ChatHistoryLimit)
	if err != nil {
		return "", fmt.Errorf("assistant_service_load_history_failed: %w", err)
	}

	payload := make([]groq.Message, 0, len(history)+2)
	payload = append(payload, groq.Message{Role: RoleSystem.String(), Content: chatSystemPrompt})

	// History arrives newest first; replay it chronologically.
	for i := len(history) - 1; i >= 0; i-- {
		turn := history[i]
		payload = append(payload, groq.Message{Role: turn.Role.String(), Content: turn.Content})
	}

	payload = append(payload, groq.Message{Role: RoleUser.String(), Content: message})

	reply, err := service.completer.Chat(context, payload)
	if err != nil {
		return "", service.wrapUpstream(context, err)
	}

	// Persist the exchange: user turn strictly before assistant turn.
	userTurn := &ChatMessage{
		ID:      uuid.New(),
		UserID:  userID,
		Role:    RoleUser,
		Content: message,
	}
	if err := service.messages.Create(context, userTurn); err != nil {
		return "", fmt.Errorf("assistant_service_persist_user_turn_failed: %w", err)
	}

	assistantTurn := &ChatMessage{
		ID:      uuid.New(),
		UserID:  userID,
		Role:    RoleAssistant,
		Content: reply,
	}
	if err := service.messages.Create(context, assistantTurn); err != nil {
		return "", fmt.Errorf("assistant_service_persist_assistant_turn_failed: %w", err)
	}

	return reply, nil
}
