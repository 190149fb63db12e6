// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package task implements personal to-do management.

Every operation is scoped to the authenticated owner: a task that belongs
to another user behaves exactly like a task that does not exist.

Architecture:

  - Service: Validates input and orchestrates storage calls.
  - Repository: Abstracted interface for Postgres.
  - Handler: Thin HTTP delivery layer.
*/
package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/lumo/internal/platform/validate"
	"github.com/taibuivan/lumo/pkg/uuid"
)

// Service implements task management use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
List returns a page of the owner's tasks, newest first.

Parameters:
  - context: context.Context
  - userID: string
  - limit, offset: int

Returns:
  - []*Task: Page of tasks
  - int: Total count for pagination metadata
  - error: Storage errors
*/
func (service *Service) List(context context.Context, userID string, limit, offset int) ([]*Task, int, error) {
	return service.repo.List(context, userID, limit, offset)
}

// CreateInput holds the data required to create a task.
type CreateInput struct {
	Title string
}

/*
Create validates and persists a new task for the owner.

Description: Titles are trimmed; empty or oversized titles are rejected.
New tasks always start incomplete.

Parameters:
  - context: context.Context
  - userID: string
  - input: CreateInput

Returns:
  - *Task: Created entity
  - error: Validation or storage errors
*/
func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Task, error) {
	title := strings.TrimSpace(input.Title)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).
		MaxLen(FieldTitle, title, MaxTitleLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	task := &Task{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
	}

	if err := service.repo.Create(context, task); err != nil {
		return nil, fmt.Errorf("task_service_create_failed: %w", err)
	}

	return task, nil
}

// UpdateInput holds the optional fields of a partial task update.
//
// Nil pointers mean "leave unchanged".
type UpdateInput struct {
	Title     *string
	Completed *bool
}

/*
Update applies a partial update to an owned task.

Description: Loads the current row first so untouched fields survive. The
load doubles as the ownership check.

Parameters:
  - context: context.Context
  - userID: string
  - id: string
  - input: UpdateInput

Returns:
  - *Task: Updated entity
  - error: apperr.NotFound, validation, or storage errors
*/
func (service *Service) Update(context context.Context, userID, id string, input UpdateInput) (*Task, error) {
	task, err := service.repo.Get(context, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)

		validator := &validate.Validator{}
		validator.Required(FieldTitle, title).
			MaxLen(FieldTitle, title, MaxTitleLength)
		if err := validator.Err(); err != nil {
			return nil, err
		}

		task.Title = title
	}

	if input.Completed != nil {
		task.Completed = *input.Completed
	}

	if err := service.repo.Update(context, task); err != nil {
		return nil, fmt.Errorf("task_service_update_failed: %w", err)
	}

	return task, nil
}

/*
Delete removes an owned task.

Parameters:
  - context: context.Context
  - userID: string
  - id: string

Returns:
  - error: apperr.NotFound when missing or not owned
*/
func (service *Service) Delete(context context.Context, userID, id string) error {
	return service.repo.Delete(context, userID, id)
}
