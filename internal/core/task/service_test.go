// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task_test

import (
	"context"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lumo/internal/core/task"
	"github.com/taibuivan/lumo/internal/platform/apperr"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	tasks map[string]*task.Task
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{tasks: make(map[string]*task.Task)}
}

func (repo *fakeRepository) owned(userID string) []*task.Task {
	var out []*task.Task
	for _, t := range repo.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (repo *fakeRepository) List(_ context.Context, userID string, limit, offset int) ([]*task.Task, int, error) {
	owned := repo.owned(userID)
	total := len(owned)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return owned[offset:end], total, nil
}

func (repo *fakeRepository) ListAll(_ context.Context, userID string) ([]*task.Task, error) {
	owned := repo.owned(userID)
	// Chronological order for prompt assembly.
	sort.Slice(owned, func(i, j int) bool { return owned[i].CreatedAt.Before(owned[j].CreatedAt) })
	return owned, nil
}

func (repo *fakeRepository) Create(_ context.Context, t *task.Task) error {
	repo.tasks[t.ID] = t
	return nil
}

func (repo *fakeRepository) Get(_ context.Context, userID, id string) (*task.Task, error) {
	t, ok := repo.tasks[id]
	if !ok || t.UserID != userID {
		return nil, apperr.NotFound("Task")
	}
	return t, nil
}

func (repo *fakeRepository) Update(_ context.Context, t *task.Task) error {
	existing, ok := repo.tasks[t.ID]
	if !ok || existing.UserID != t.UserID {
		return apperr.NotFound("Task")
	}
	repo.tasks[t.ID] = t
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, userID, id string) error {
	t, ok := repo.tasks[id]
	if !ok || t.UserID != userID {
		return apperr.NotFound("Task")
	}
	delete(repo.tasks, id)
	return nil
}

func newTestService() (*task.Service, *fakeRepository) {
	repo := newFakeRepository()
	return task.NewService(repo, slog.Default()), repo
}

func TestService_Create(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, "user-1", task.CreateInput{Title: "  Buy milk  "})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Buy milk", created.Title, "title should be trimmed")
	assert.False(t, created.Completed, "new tasks start incomplete")
}

func TestService_Create_EmptyTitle(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Create(context.Background(), "user-1", task.CreateInput{Title: "   "})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestService_Update_Partial(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, "user-1", task.CreateInput{Title: "Buy milk"})
	require.NoError(t, err)

	// Completing without a title change must preserve the title.
	done := true
	updated, err := service.Update(ctx, "user-1", created.ID, task.UpdateInput{Completed: &done})
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", updated.Title)
	assert.True(t, updated.Completed)

	// Retitling without a completed change must preserve the flag.
	title := "Buy oat milk"
	updated, err = service.Update(ctx, "user-1", created.ID, task.UpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", updated.Title)
	assert.True(t, updated.Completed)
}

func TestService_Update_EmptyTitleRejected(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, "user-1", task.CreateInput{Title: "Buy milk"})
	require.NoError(t, err)

	empty := ""
	_, err = service.Update(ctx, "user-1", created.ID, task.UpdateInput{Title: &empty})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestService_OwnershipIsolation(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, "user-1", task.CreateInput{Title: "Secret task"})
	require.NoError(t, err)

	// Another user's access to an existing task is a plain 404.
	done := true
	_, err = service.Update(ctx, "user-2", created.ID, task.UpdateInput{Completed: &done})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)

	err = service.Delete(ctx, "user-2", created.ID)
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)

	// The owner still sees it.
	tasks, total, err := service.List(ctx, "user-1", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, tasks, 1)
}

func TestService_Delete(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, "user-1", task.CreateInput{Title: "Buy milk"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, "user-1", created.ID))

	// Deleting twice yields NotFound.
	err = service.Delete(ctx, "user-1", created.ID)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}
