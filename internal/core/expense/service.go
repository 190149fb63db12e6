// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package expense implements personal spending tracking.

Every operation is scoped to the authenticated owner. Besides plain CRUD
the package produces an aggregated spending summary that also feeds the
AI assistant's budget analysis.

Architecture:

  - Service: Validates input and orchestrates storage calls.
  - Repository: Abstracted interface for Postgres.
  - Handler: Thin HTTP delivery layer.
*/
package expense

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/lumo/internal/platform/validate"
	"github.com/taibuivan/lumo/pkg/uuid"
)

// Service implements expense tracking use cases.
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
List returns a page of the owner's expenses, newest first.

Parameters:
  - context: context.Context
  - userID: string
  - limit, offset: int

Returns:
  - []*Expense: Page of expenses
  - int: Total count for pagination metadata
  - error: Storage errors
*/
func (service *Service) List(context context.Context, userID string, limit, offset int) ([]*Expense, int, error) {
	return service.repo.List(context, userID, limit, offset)
}

// CreateInput holds the data required to record an expense.
type CreateInput struct {
	Category string
	Amount   float64
}

/*
Create validates and persists a new expense for the owner.

Description: Categories are trimmed and required; amounts must be strictly
positive.

Parameters:
  - context: context.Context
  - userID: string
  - input: CreateInput

Returns:
  - *Expense: Created entity
  - error: Validation or storage errors
*/
func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Expense, error) {
	category := strings.TrimSpace(input.Category)

	validator := &validate.Validator{}
	validator.Required(FieldCategory, category).
		MaxLen(FieldCategory, category, MaxCategoryLength).
		Custom(FieldAmount, input.Amount <= 0, "Must be greater than zero")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	expense := &Expense{
		ID:       uuid.New(),
		UserID:   userID,
		Category: category,
		Amount:   input.Amount,
	}

	if err := service.repo.Create(context, expense); err != nil {
		return nil, fmt.Errorf("expense_service_create_failed: %w", err)
	}

	return expense, nil
}

/*
Delete removes an owned expense.

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

/*
Summarize aggregates the owner's spending.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Summary: Grand total plus per-category totals, highest first
  - error: Storage errors
*/
func (service *Service) Summarize(context context.Context, userID string) (*Summary, error) {
	return service.repo.Summarize(context, userID)
}
