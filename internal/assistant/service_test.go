// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assistant_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lumo/internal/assistant"
	"github.com/taibuivan/lumo/internal/core/expense"
	"github.com/taibuivan/lumo/internal/core/task"
	"github.com/taibuivan/lumo/internal/platform/apperr"
	"github.com/taibuivan/lumo/internal/platform/groq"
	"github.com/taibuivan/lumo/pkg/uuid"
)

// fakeCompleter records every upstream payload and returns a scripted reply.
type fakeCompleter struct {
	calls [][]groq.Message
	reply string
	err   error
}

func (completer *fakeCompleter) Chat(_ context.Context, messages []groq.Message) (string, error) {
	copied := make([]groq.Message, len(messages))
	copy(copied, messages)
	completer.calls = append(completer.calls, copied)
	if completer.err != nil {
		return "", completer.err
	}
	return completer.reply, nil
}

// fakeMessageRepository is an in-memory, append-only conversation log.
type fakeMessageRepository struct {
	turns []*assistant.ChatMessage
}

func (repo *fakeMessageRepository) ListRecent(_ context.Context, userID string, limit int) ([]*assistant.ChatMessage, error) {
	var owned []*assistant.ChatMessage
	// Newest first: walk the append-only log backwards.
	for i := len(repo.turns) - 1; i >= 0 && len(owned) < limit; i-- {
		if repo.turns[i].UserID == userID {
			owned = append(owned, repo.turns[i])
		}
	}
	return owned, nil
}

func (repo *fakeMessageRepository) Create(_ context.Context, message *assistant.ChatMessage) error {
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	repo.turns = append(repo.turns, message)
	return nil
}

// fakeTaskSource serves a fixed task list.
type fakeTaskSource struct {
	tasks []*task.Task
}

func (source *fakeTaskSource) ListAll(_ context.Context, _ string) ([]*task.Task, error) {
	return source.tasks, nil
}

// fakeExpenseSource serves a fixed spending summary.
type fakeExpenseSource struct {
	summary *expense.Summary
}

func (source *fakeExpenseSource) Summarize(_ context.Context, _ string) (*expense.Summary, error) {
	return source.summary, nil
}

// fakeSuggestionCache is an in-memory SuggestionCache without expiry.
type fakeSuggestionCache struct {
	entries map[string]string
	sets    int
}

func newFakeSuggestionCache() *fakeSuggestionCache {
	return &fakeSuggestionCache{entries: make(map[string]string)}
}

func (cache *fakeSuggestionCache) Get(_ context.Context, userID string) (string, bool, error) {
	value, ok := cache.entries[userID]
	return value, ok, nil
}

func (cache *fakeSuggestionCache) Set(_ context.Context, userID, suggestion string, _ time.Duration) error {
	cache.entries[userID] = suggestion
	cache.sets++
	return nil
}

type fixture struct {
	service   *assistant.Service
	completer *fakeCompleter
	messages  *fakeMessageRepository
	tasks     *fakeTaskSource
	expenses  *fakeExpenseSource
	cache     *fakeSuggestionCache
}

func newFixture() *fixture {
	f := &fixture{
		completer: &fakeCompleter{reply: "scripted reply"},
		messages:  &fakeMessageRepository{},
		tasks:     &fakeTaskSource{},
		expenses:  &fakeExpenseSource{summary: &expense.Summary{Categories: []expense.CategoryTotal{}}},
		cache:     newFakeSuggestionCache(),
	}
	f.service = assistant.NewService(f.messages, f.tasks, f.expenses, f.completer, f.cache, slog.Default())
	return f
}

func TestService_DisabledWithoutCompleter(t *testing.T) {
	f := newFixture()
	service := assistant.NewService(f.messages, f.tasks, f.expenses, nil, nil, slog.Default())
	ctx := context.Background()

	operations := map[string]func() (string, error){
		"suggest":    func() (string, error) { return service.Suggest(ctx, "user-1") },
		"analyze":    func() (string, error) { return service.AnalyzeBudget(ctx, "user-1") },
		"prioritize": func() (string, error) { return service.PrioritizeTasks(ctx, "user-1") },
		"chat":       func() (string, error) { return service.Chat(ctx, "user-1", "hi") },
	}

	for name, operation := range operations {
		t.Run(name, func(t *testing.T) {
			_, err := operation()
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "SERVICE_UNAVAILABLE", ae.Code)
		})
	}
}

func TestService_AnalyzeBudget_EmptyShortCircuit(t *testing.T) {
	f := newFixture()

	analysis, err := f.service.AnalyzeBudget(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "📊 No expenses to analyze yet. Add some expenses first!", analysis)
	assert.Empty(t, f.completer.calls, "empty state must not reach the upstream model")
}

func TestService_AnalyzeBudget(t *testing.T) {
	f := newFixture()
	f.expenses.summary = &expense.Summary{
		Total:      100,
		Categories: []expense.CategoryTotal{{Category: "rent", Total: 100}},
	}

	analysis, err := f.service.AnalyzeBudget(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "scripted reply", analysis)

	require.Len(t, f.completer.calls, 1)
	payload := f.completer.calls[0]
	require.Len(t, payload, 2)
	assert.Equal(t, "system", payload[0].Role)
	assert.Equal(t, "user", payload[1].Role)
	assert.Contains(t, payload[1].Content, "Total spending: $100.00")
}

func TestService_PrioritizeTasks_AllDoneShortCircuit(t *testing.T) {
	f := newFixture()
	f.tasks.tasks = []*task.Task{
		{ID: "t1", Title: "Buy milk", Completed: true},
		{ID: "t2", Title: "File taxes", Completed: true},
	}

	priorities, err := f.service.PrioritizeTasks(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "✅ All tasks completed! Great job!", priorities)
	assert.Empty(t, f.completer.calls, "all-done state must not reach the upstream model")
}

func TestService_PrioritizeTasks_FiltersCompleted(t *testing.T) {
	f := newFixture()
	f.tasks.tasks = []*task.Task{
		{ID: "t1", Title: "Buy milk", Completed: true},
		{ID: "t2", Title: "File taxes", Completed: false},
	}

	_, err := f.service.PrioritizeTasks(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, f.completer.calls, 1)
	userPrompt := f.completer.calls[0][1].Content
	assert.Contains(t, userPrompt, "t2. File taxes")
	assert.NotContains(t, userPrompt, "Buy milk")
}

func TestService_Suggest_CachesResult(t *testing.T) {
	f := newFixture()

	first, err := f.service.Suggest(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "scripted reply", first)
	assert.Len(t, f.completer.calls, 1)

	// A repeat call inside the TTL is served from cache.
	second, err := f.service.Suggest(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, f.completer.calls, 1, "cached suggestion must not reach the upstream model")
	assert.Equal(t, 1, f.cache.sets)
}

func TestService_Suggest_CacheIsPerUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Suggest(ctx, "user-1")
	require.NoError(t, err)
	_, err = f.service.Suggest(ctx, "user-2")
	require.NoError(t, err)

	assert.Len(t, f.completer.calls, 2, "each user gets their own cache entry")
}

func TestService_Suggest_UpstreamFailure(t *testing.T) {
	f := newFixture()
	f.completer.err = fmt.Errorf("upstream exploded")

	_, err := f.service.Suggest(context.Background(), "user-1")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "SERVICE_UNAVAILABLE", ae.Code)
	assert.NotContains(t, ae.Message, "exploded", "upstream details must not leak to clients")
}

func TestService_Chat_PayloadShape(t *testing.T) {
	f := newFixture()

	// Seed two prior turns.
	seedTurns := []*assistant.ChatMessage{
		{ID: uuid.New(), UserID: "user-1", Role: assistant.RoleUser, Content: "first question"},
		{ID: uuid.New(), UserID: "user-1", Role: assistant.RoleAssistant, Content: "first answer"},
	}
	for _, turn := range seedTurns {
		require.NoError(t, f.messages.Create(context.Background(), turn))
	}

	reply, err := f.service.Chat(context.Background(), "user-1", "second question")
	require.NoError(t, err)
	assert.Equal(t, "scripted reply", reply)

	require.Len(t, f.completer.calls, 1)
	payload := f.completer.calls[0]
	require.Len(t, payload, 4)

	// Exactly one system message, at position 0.
	assert.Equal(t, "system", payload[0].Role)
	for _, message := range payload[1:] {
		assert.NotEqual(t, "system", message.Role)
	}

	// History replayed chronologically, then the new message.
	assert.Equal(t, "first question", payload[1].Content)
	assert.Equal(t, "first answer", payload[2].Content)
	assert.Equal(t, "user", payload[3].Role)
	assert.Equal(t, "second question", payload[3].Content)
}

func TestService_Chat_PersistsUserThenAssistant(t *testing.T) {
	f := newFixture()

	_, err := f.service.Chat(context.Background(), "user-1", "hello")
	require.NoError(t, err)

	require.Len(t, f.messages.turns, 2)
	assert.Equal(t, assistant.RoleUser, f.messages.turns[0].Role)
	assert.Equal(t, "hello", f.messages.turns[0].Content)
	assert.Equal(t, assistant.RoleAssistant, f.messages.turns[1].Role)
	assert.Equal(t, "scripted reply", f.messages.turns[1].Content)
}

func TestService_Chat_UpstreamFailureKeepsLogClean(t *testing.T) {
	f := newFixture()
	f.completer.err = fmt.Errorf("upstream exploded")

	_, err := f.service.Chat(context.Background(), "user-1", "hello")
	require.Error(t, err)

	// A failed exchange must not leave a half-written conversation.
	assert.Empty(t, f.messages.turns)
}

func TestService_Chat_HistoryLimit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Seed more turns than the replay window.
	for i := 0; i < assistant.ChatHistoryLimit+5; i++ {
		require.NoError(t, f.messages.Create(ctx, &assistant.ChatMessage{
			ID:      uuid.New(),
			UserID:  "user-1",
			Role:    assistant.RoleUser,
			Content: fmt.Sprintf("turn %d", i),
		}))
	}

	_, err := f.service.Chat(ctx, "user-1", "latest")
	require.NoError(t, err)

	require.Len(t, f.completer.calls, 1)
	// system + limited history + new message.
	assert.Len(t, f.completer.calls[0], 1+assistant.ChatHistoryLimit+1)
}
