package service

import (
	"context"
	"fmt"

	"github.com/atlasmove/movechat/internal/api"
	"github.com/atlasmove/movechat/internal/domain"
)

// HistoryLoader fetches and normalizes the persisted message list for a
// conversation. Safe to invoke repeatedly; each activation re-fetches.
type HistoryLoader struct {
	api *api.Client
}

func NewHistoryLoader(client *api.Client) *HistoryLoader {
	return &HistoryLoader{api: client}
}

// Load returns the conversation's messages oldest first. On failure the
// caller keeps an empty list; partial results are never returned.
func (l *HistoryLoader) Load(ctx context.Context, conversationID string) ([]domain.Message, error) {
	dtos, err := l.api.Messages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	msgs := make([]domain.Message, len(dtos))
	for i, m := range dtos {
		msgs[i] = domain.Message{
			ID:      m.ID,
			Role:    domain.Role(m.Role),
			Content: m.Content,
		}
	}
	return msgs, nil
}
