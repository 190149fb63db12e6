// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/lumo/internal/platform/apperr"
	"github.com/taibuivan/lumo/internal/platform/dberr"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
List returns a page of the owner's expenses ordered newest first.

Parameters:
  - context: context.Context
  - userID: string (owner scope)
  - limit, offset: int (SQL LIMIT/OFFSET)

Returns:
  - []*Expense: Page of expenses
  - int: Total count of the owner's expenses
  - error: Execution errors
*/
func (repository *PostgresRepository) List(context context.Context, userID string, limit, offset int) ([]*Expense, int, error) {
	const countQuery = `SELECT count(*) FROM core.expense WHERE userid = $1`

	var total int
	if err := repository.db.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_expenses")
	}

	const query = `
		SELECT id, userid, category, amount, createdat
		FROM core.expense
		WHERE userid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_expenses")
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e := &Expense{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.Category, &e.Amount, &e.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_expense")
		}
		expenses = append(expenses, e)
	}

	return expenses, total, nil
}

/*
Create persists a new expense row.

Parameters:
  - context: context.Context
  - expense: *Expense (Entity to persist; CreatedAt is stamped if zero)

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) Create(context context.Context, expense *Expense) error {
	const query = `
		INSERT INTO core.expense (id, userid, category, amount, createdat)
		VALUES ($1, $2, $3, $4, $5)`

	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now()
	}

	_, err := repository.db.Exec(context, query,
		expense.ID,
		expense.UserID,
		expense.Category,
		expense.Amount,
		expense.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_expense_repo_create_failed: %w", err)
	}

	return nil
}

/*
Delete removes an owned expense by ID.

Parameters:
  - context: context.Context
  - userID: string (owner scope)
  - id: string

Returns:
  - error: apperr.NotFound when missing or not owned
*/
func (repository *PostgresRepository) Delete(context context.Context, userID, id string) error {
	const query = `DELETE FROM core.expense WHERE id = $1 AND userid = $2`

	cmd, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return fmt.Errorf("postgres_expense_repo_delete_failed: %w", err)
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Expense")
	}

	return nil
}

/*
Summarize aggregates the owner's spending in a single round trip.

Description: Groups by category and orders by the per-category total,
highest first. The grand total is derived from the group rows rather than
queried separately, so the two figures can never disagree.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Summary: Grand total plus per-category breakdown
  - error: Execution errors
*/
func (repository *PostgresRepository) Summarize(context context.Context, userID string) (*Summary, error) {
	const query = `
		SELECT category, SUM(amount) AS total
		FROM core.expense
		WHERE userid = $1
		GROUP BY category
		ORDER BY total DESC`

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "summarize_expenses")
	}
	defer rows.Close()

	summary := &Summary{Categories: []CategoryTotal{}}
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, dberr.Wrap(err, "scan_expense_summary")
		}
		summary.Categories = append(summary.Categories, ct)
		summary.Total += ct.Total
	}

	return summary, nil
}
