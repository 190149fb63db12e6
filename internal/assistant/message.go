// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assistant

import (
	"fmt"
	"time"
)

// # Roles

// Role identifies the author of a conversation turn.
//
// It is a closed enum. The literal strings "system", "user" and "assistant"
// exist only at the transport and storage boundaries; everything in between
// passes the typed value around.
type Role int

const (
	RoleSystem Role = iota
	RoleUser
	RoleAssistant
)

// String returns the wire/storage literal for the role.
func (role Role) String() string {
	switch role {
	case RoleSystem:
		return "system"
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the role as its wire literal.
func (role Role) MarshalJSON() ([]byte, error) {
	return []byte(`"` + role.String() + `"`), nil
}

// ParseRole converts a stored literal back into a [Role].
//
// Unknown literals are rejected rather than defaulted: a bad row in the
// message table must surface loudly, not impersonate a participant.
func ParseRole(literal string) (Role, error) {
	switch literal {
	case "system":
		return RoleSystem, nil
	case "user":
		return RoleUser, nil
	case "assistant":
		return RoleAssistant, nil
	default:
		return 0, fmt.Errorf("assistant_unknown_role: %q", literal)
	}
}

// # Entities

// ChatMessage is one persisted turn of a user's conversation.
//
// The log is append-only: turns are never edited or deleted.
type ChatMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
