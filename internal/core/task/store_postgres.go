// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
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
List returns a page of the owner's tasks ordered newest first.

Parameters:
  - context: context.Context
  - userID: string (owner scope)
  - limit, offset: int (SQL LIMIT/OFFSET)

Returns:
  - []*Task: Page of tasks
  - int: Total count of the owner's tasks
  - error: Execution errors
*/
func (repository *PostgresRepository) List(context context.Context, userID string, limit, offset int) ([]*Task, int, error) {
	const countQuery = `SELECT count(*) FROM core.task WHERE userid = $1`

	var total int
	if err := repository.db.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_tasks")
	}

	const query = `
		SELECT id, userid, title, completed, createdat
		FROM core.task
		WHERE userid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tasks")
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		t := &Task{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Completed, &t.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_task")
		}
		tasks = append(tasks, t)
	}

	return tasks, total, nil
}

/*
ListAll returns every task of the owner in chronological order.

Description: Feeds the AI prompt assembler, which needs the full task list
rather than a page.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []*Task: All owned tasks, oldest first
  - error: Execution errors
*/
func (repository *PostgresRepository) ListAll(context context.Context, userID string) ([]*Task, error) {
	const query = `
		SELECT id, userid, title, completed, createdat
		FROM core.task
		WHERE userid = $1
		ORDER BY createdat ASC`

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_all_tasks")
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		t := &Task{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Completed, &t.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_task")
		}
		tasks = append(tasks, t)
	}

	return tasks, nil
}

/*
Create persists a new task row.

Parameters:
  - context: context.Context
  - task: *Task (Entity to persist; CreatedAt is stamped if zero)

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) Create(context context.Context, task *Task) error {
	const query = `
		INSERT INTO core.task (id, userid, title, completed, createdat)
		VALUES ($1, $2, $3, $4, $5)`

	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}

	_, err := repository.db.Exec(context, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Completed,
		task.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_task_repo_create_failed: %w", err)
	}

	return nil
}

/*
Get returns a single owned task by ID.

Parameters:
  - context: context.Context
  - userID: string (owner scope)
  - id: string

Returns:
  - *Task: Hydrated entity
  - error: apperr.NotFound when missing or not owned
*/
func (repository *PostgresRepository) Get(context context.Context, userID, id string) (*Task, error) {
	const query = `
		SELECT id, userid, title, completed, createdat
		FROM core.task
		WHERE id = $1 AND userid = $2`

	t := &Task{}
	err := repository.db.QueryRow(context, query, id, userID).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Completed, &t.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Task")
		}
		return nil, fmt.Errorf("postgres_task_repo_get_failed: %w", err)
	}

	return t, nil
}

/*
Update persists title and completion changes to an owned task.

Parameters:
  - context: context.Context
  - task: *Task (must carry ID and UserID)

Returns:
  - error: apperr.NotFound when missing or not owned
*/
func (repository *PostgresRepository) Update(context context.Context, task *Task) error {
	const query = `
		UPDATE core.task
		SET title = $3, completed = $4
		WHERE id = $1 AND userid = $2`

	cmd, err := repository.db.Exec(context, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Completed,
	)

	if err != nil {
		return fmt.Errorf("postgres_task_repo_update_failed: %w", err)
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Task")
	}

	return nil
}

/*
Delete removes an owned task by ID.

Parameters:
  - context: context.Context
  - userID: string (owner scope)
  - id: string

Returns:
  - error: apperr.NotFound when missing or not owned
*/
func (repository *PostgresRepository) Delete(context context.Context, userID, id string) error {
	const query = `DELETE FROM core.task WHERE id = $1 AND userid = $2`

	cmd, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return fmt.Errorf("postgres_task_repo_delete_failed: %w", err)
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Task")
	}

	return nil
}
