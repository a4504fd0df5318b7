package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atlasmove/movechat/internal/api"
	"github.com/atlasmove/movechat/internal/config"
	"github.com/atlasmove/movechat/internal/domain"
)

// Registry owns the known conversations for the logged-in user and the
// currently active session. Sessions reach back into it only through the
// title-update callback.
type Registry struct {
	userID string
	api    *api.Client
	loader *HistoryLoader
	coords CoordinateSource

	conversations []domain.Conversation
	active        *Session
}

func NewRegistry(userID string, client *api.Client, coords CoordinateSource) (*Registry, error) {
	if userID == "" {
		return nil, domain.ErrNotLoggedIn
	}
	return &Registry{
		userID: userID,
		api:    client,
		loader: NewHistoryLoader(client),
		coords: coords,
	}, nil
}

// ConversationsResult carries a finished list fetch.
type ConversationsResult struct {
	Conversations []domain.Conversation
	Err           error
}

// LoadConversations returns the list fetch to run off-loop. Route the result
// back through ApplyConversations.
func (r *Registry) LoadConversations() func(context.Context) ConversationsResult {
	userID := r.userID
	client := r.api
	return func(ctx context.Context) ConversationsResult {
		dtos, err := client.Conversations(ctx, userID)
		if err != nil {
			return ConversationsResult{Err: fmt.Errorf("fetch conversations: %w", err)}
		}

		convs := make([]domain.Conversation, len(dtos))
		for i, c := range dtos {
			convs[i] = domain.Conversation{
				ID:        c.ID,
				Title:     c.Title,
				CreatedAt: c.CreatedAt,
			}
		}
		return ConversationsResult{Conversations: convs}
	}
}

// ApplyConversations replaces the list, keeping the server ordering
// (most recent first). A failed fetch leaves the current list alone.
func (r *Registry) ApplyConversations(res ConversationsResult) {
	if res.Err != nil {
		slog.Error("fetch conversations", "error", res.Err, "user_id", r.userID)
		return
	}
	r.conversations = res.Conversations
}

// CreateResult carries a finished conversation creation.
type CreateResult struct {
	ConversationID string
	Err            error
}

// CreateConversation returns the backend call that allocates a new
// conversation id. Route the result back through ApplyCreate.
func (r *Registry) CreateConversation() func(context.Context) CreateResult {
	userID := r.userID
	client := r.api
	return func(ctx context.Context) CreateResult {
		id, err := client.StartChat(ctx, userID)
		if err != nil {
			return CreateResult{Err: fmt.Errorf("start chat: %w", err)}
		}
		return CreateResult{ConversationID: id}
	}
}

// ApplyCreate prepends the new conversation with a placeholder title and
// makes it active. Returns the fresh session, or nil when creation failed.
func (r *Registry) ApplyCreate(res CreateResult) *Session {
	if res.Err != nil {
		slog.Error("create conversation", "error", res.Err, "user_id", r.userID)
		return nil
	}

	conv := domain.Conversation{
		ID:        res.ConversationID,
		Title:     config.DefaultConversationTitle,
		CreatedAt: time.Now(),
	}
	r.conversations = append([]domain.Conversation{conv}, r.conversations...)
	return r.Select(conv.ID)
}

// Select swaps the active conversation. The previous session is discarded,
// never reused; any of its in-flight work resolves into the abandoned
// instance without touching the new one.
func (r *Registry) Select(conversationID string) *Session {
	if r.active != nil {
		r.active.Discard()
	}
	r.active = NewSession(r.userID, conversationID, r.api, r.loader, r.coords, r.OnTitleUpdated)
	return r.active
}

// OnTitleUpdated rewrites the matching conversation's title in place. An
// unknown id is a no-op; the list may have been refreshed concurrently.
func (r *Registry) OnTitleUpdated(conversationID, title string) {
	for i := range r.conversations {
		if r.conversations[i].ID == conversationID {
			r.conversations[i].Title = title
			return
		}
	}
}

func (r *Registry) Conversations() []domain.Conversation {
	return r.conversations
}

// Active returns the current session, nil before the first selection.
func (r *Registry) Active() *Session {
	return r.active
}
