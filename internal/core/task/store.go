// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import "context"

// Repository defines the storage contract for tasks.
//
// # Ownership
//
// Every method takes the owner's userID and must never return or touch a row
// belonging to another user. A task that exists but belongs to someone else
// is indistinguishable from a task that does not exist.
type Repository interface {
	// List returns the owner's tasks, newest first, with the total count for
	// pagination metadata.
	List(context context.Context, userID string, limit, offset int) ([]*Task, int, error)

	// ListAll returns every task of the owner in chronological order.
	// Used by the AI assistant to build prompts.
	ListAll(context context.Context, userID string) ([]*Task, error)

	// Create persists a new task.
	Create(context context.Context, task *Task) error

	// Update persists title/completed changes to an owned task.
	Update(context context.Context, task *Task) error

	// Get returns an owned task by ID.
	Get(context context.Context, userID, id string) (*Task, error)

	// Delete removes an owned task by ID.
	Delete(context context.Context, userID, id string) error
}
