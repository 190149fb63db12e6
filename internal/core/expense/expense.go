// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package expense

import "time"

// # JSON Field Identifiers

const (
	FieldCategory = "category"
	FieldAmount   = "amount"
)

// # Limits

const (
	// MaxCategoryLength bounds category names.
	MaxCategoryLength = 100
)

// Expense is a single spending record owned by exactly one user.
type Expense struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryTotal is one line of the spending summary.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// Summary aggregates the owner's spending.
//
// Categories are ordered by total, highest first.
type Summary struct {
	Total      float64         `json:"total"`
	Categories []CategoryTotal `json:"categories"`
}
