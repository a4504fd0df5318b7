package domain

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a conversation. Immutable once created.
type Message struct {
	ID      string
	Role    Role
	Content string
}

// NewLocalMessage builds a message with a locally generated id
// (role plus monotonic timestamp). Persisted messages carry server-assigned
// ids instead; the two id spaces are never reconciled.
func NewLocalMessage(role Role, content string) Message {
	return Message{
		ID:      fmt.Sprintf("%s-%d", role, time.Now().UnixNano()),
		Role:    role,
		Content: content,
	}
}
