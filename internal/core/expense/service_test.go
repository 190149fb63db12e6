// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package expense_test

import (
	"context"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lumo/internal/core/expense"
	"github.com/taibuivan/lumo/internal/platform/apperr"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	expenses map[string]*expense.Expense
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{expenses: make(map[string]*expense.Expense)}
}

func (repo *fakeRepository) owned(userID string) []*expense.Expense {
	var out []*expense.Expense
	for _, e := range repo.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (repo *fakeRepository) List(_ context.Context, userID string, limit, offset int) ([]*expense.Expense, int, error) {
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

func (repo *fakeRepository) Create(_ context.Context, e *expense.Expense) error {
	repo.expenses[e.ID] = e
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, userID, id string) error {
	e, ok := repo.expenses[id]
	if !ok || e.UserID != userID {
		return apperr.NotFound("Expense")
	}
	delete(repo.expenses, id)
	return nil
}

func (repo *fakeRepository) Summarize(_ context.Context, userID string) (*expense.Summary, error) {
	totals := make(map[string]float64)
	for _, e := range repo.expenses {
		if e.UserID == userID {
			totals[e.Category] += e.Amount
		}
	}

	summary := &expense.Summary{Categories: []expense.CategoryTotal{}}
	for category, total := range totals {
		summary.Categories = append(summary.Categories, expense.CategoryTotal{Category: category, Total: total})
		summary.Total += total
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Total > summary.Categories[j].Total
	})

	return summary, nil
}

func newTestService() (*expense.Service, *fakeRepository) {
	repo := newFakeRepository()
	return expense.NewService(repo, slog.Default()), repo
}

func TestService_Create(t *testing.T) {
	service, _ := newTestService()

	created, err := service.Create(context.Background(), "user-1", expense.CreateInput{
		Category: "  groceries  ",
		Amount:   42.50,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "groceries", created.Category, "category should be trimmed")
	assert.Equal(t, 42.50, created.Amount)
}

func TestService_Create_InvalidAmount(t *testing.T) {
	service, _ := newTestService()

	testCases := []struct {
		name   string
		amount float64
	}{
		{name: "zero", amount: 0},
		{name: "negative", amount: -5},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), "user-1", expense.CreateInput{
				Category: "groceries",
				Amount:   testCase.amount,
			})
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

func TestService_Create_MissingCategory(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Create(context.Background(), "user-1", expense.CreateInput{
		Category: "   ",
		Amount:   10,
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestService_Summarize(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	seed := []expense.CreateInput{
		{Category: "groceries", Amount: 30},
		{Category: "groceries", Amount: 20},
		{Category: "rent", Amount: 900},
		{Category: "coffee", Amount: 4.50},
	}
	for _, input := range seed {
		_, err := service.Create(ctx, "user-1", input)
		require.NoError(t, err)
	}
	// Another user's spending must not leak into the summary.
	_, err := service.Create(ctx, "user-2", expense.CreateInput{Category: "rent", Amount: 5000})
	require.NoError(t, err)

	summary, err := service.Summarize(ctx, "user-1")
	require.NoError(t, err)

	assert.InDelta(t, 954.50, summary.Total, 0.001)
	require.Len(t, summary.Categories, 3)

	// Highest spend first.
	assert.Equal(t, "rent", summary.Categories[0].Category)
	assert.Equal(t, "groceries", summary.Categories[1].Category)
	assert.Equal(t, "coffee", summary.Categories[2].Category)
}

func TestService_Delete_OwnershipIsolation(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, "user-1", expense.CreateInput{Category: "rent", Amount: 900})
	require.NoError(t, err)

	err = service.Delete(ctx, "user-2", created.ID)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)

	require.NoError(t, service.Delete(ctx, "user-1", created.ID))
}
