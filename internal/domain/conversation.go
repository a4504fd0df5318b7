package domain

import "time"

// Conversation is a sidebar entry. Title starts as a placeholder and is
// rewritten when the backend generates a real one.
type Conversation struct {
	ID        string
	Title     string
	CreatedAt time.Time
}
