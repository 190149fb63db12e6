// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/lumo/internal/platform/dberr"
)

// PostgresMessageRepository implements the MessageRepository interface using pgx.
type PostgresMessageRepository struct {
	db *pgxpool.Pool
}

// NewPostgresMessageRepository creates a new PostgreSQL implementation of the MessageRepository.
func NewPostgresMessageRepository(db *pgxpool.Pool) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

/*
ListRecent returns the owner's most recent conversation turns, newest first.

Description: The newest-first order matches how the service consumes the
result (it reverses the slice to replay chronologically). Rows with an
unknown role literal abort the load rather than being skipped.

Parameters:
  - context: context.Context
  - userID: string (owner scope)
  - limit: int (maximum number of turns)

Returns:
  - []*ChatMessage: Recent turns, newest first
  - error: Execution or role-decoding errors
*/
func (repository *PostgresMessageRepository) ListRecent(context context.Context, userID string, limit int) ([]*ChatMessage, error) {
	const query = `
		SELECT id, userid, role, content, createdat
		FROM assistant.message
		WHERE userid = $1
		ORDER BY createdat DESC
		LIMIT $2`

	rows, err := repository.db.Query(context, query, userID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "list_recent_messages")
	}
	defer rows.Close()

	var messages []*ChatMessage
	for rows.Next() {
		m := &ChatMessage{}
		var roleLiteral string
		if err := rows.Scan(&m.ID, &m.UserID, &roleLiteral, &m.Content, &m.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_message")
		}

		role, err := ParseRole(roleLiteral)
		if err != nil {
			return nil, fmt.Errorf("postgres_message_repo_bad_role: %w", err)
		}
		m.Role = role

		messages = append(messages, m)
	}

	return messages, nil
}

/*
Create appends a conversation turn to the log.

Parameters:
  - context: context.Context
  - message: *ChatMessage (Entity to persist; CreatedAt is stamped if zero)

Returns:
  - error: Execution errors
*/
func (repository *PostgresMessageRepository) Create(context context.Context, message *ChatMessage) error {
	const query = `
		INSERT INTO assistant.message (id, userid, role, content, createdat)
		VALUES ($1, $2, $3, $4, $5)`

	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := repository.db.Exec(context, query,
		message.ID,
		message.UserID,
		message.Role.String(),
		message.Content,
		message.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_message_repo_create_failed: %w", err)
	}

	return nil
}
