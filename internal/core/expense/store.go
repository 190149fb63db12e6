// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package expense

import "context"

// Repository defines the storage contract for expenses.
//
// # Ownership
//
// Every method takes the owner's userID and must never return or touch a row
// belonging to another user.
type Repository interface {
	// List returns the owner's expenses, newest first, with the total count
	// for pagination metadata.
	List(context context.Context, userID string, limit, offset int) ([]*Expense, int, error)

	// Create persists a new expense.
	Create(context context.Context, expense *Expense) error

	// Delete removes an owned expense by ID.
	Delete(context context.Context, userID, id string) error

	// Summarize aggregates the owner's spending: grand total plus
	// per-category totals ordered highest first.
	Summarize(context context.Context, userID string) (*Summary, error)
}
