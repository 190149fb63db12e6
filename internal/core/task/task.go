// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import "time"

// # JSON Field Identifiers

const (
	FieldTitle     = "title"
	FieldCompleted = "completed"
	FieldID        = "id"
)

// # Limits

const (
	// MaxTitleLength bounds task titles to keep list views and AI prompts sane.
	MaxTitleLength = 500
)

// Task is a single to-do item owned by exactly one user.
//
// The owner is never serialized: all task endpoints are scoped to the
// authenticated user, so echoing the UserID back is redundant.
type Task struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}
