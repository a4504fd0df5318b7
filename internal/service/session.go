package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/atlasmove/movechat/internal/api"
	"github.com/atlasmove/movechat/internal/domain"
)

// State is the session view-state. Errors are not a state of their own: a
// failed load or send returns to StateIdle with a transient error string
// attached, cleared on the next accepted submit.
type State int

const (
	StateLoadingHistory State = iota
	StateIdle
	StateSending
)

// sendFailureNotice is appended as a synthesized assistant message when a
// send fails, in addition to the transient error banner.
const sendFailureNotice = "Sorry, I encountered an error processing your message. Please try again."

// historyFailureBanner is the conversation-scoped error shown when the
// initial history load fails.
const historyFailureBanner = "Failed to load conversation history"

// TitleFunc receives backend-generated conversation titles.
type TitleFunc func(conversationID, title string)

// Session owns the in-memory message list for one active conversation.
//
// All methods must be called from the owning loop. The thunks returned by
// LoadHistory and Submit are the only pieces that run elsewhere; they close
// over immutable fields and never touch session state. Their results are
// routed back through ApplyHistory and ApplySend on the owning loop.
type Session struct {
	userID         string
	conversationID string

	api     *api.Client
	loader  *HistoryLoader
	coords  CoordinateSource
	onTitle TitleFunc

	messages []domain.Message
	state    State
	lastErr  string
	closed   bool
}

func NewSession(userID, conversationID string, client *api.Client, loader *HistoryLoader, coords CoordinateSource, onTitle TitleFunc) *Session {
	return &Session{
		userID:         userID,
		conversationID: conversationID,
		api:            client,
		loader:         loader,
		coords:         coords,
		onTitle:        onTitle,
		state:          StateLoadingHistory,
	}
}

// HistoryResult carries a finished history load back to its session.
type HistoryResult struct {
	Session  *Session
	Messages []domain.Message
	Err      error
}

// LoadHistory returns the history fetch to run off-loop. Route the result
// back through ApplyHistory.
func (s *Session) LoadHistory() func(context.Context) HistoryResult {
	sess := s
	loader := s.loader
	conversationID := s.conversationID
	return func(ctx context.Context) HistoryResult {
		msgs, err := loader.Load(ctx, conversationID)
		return HistoryResult{Session: sess, Messages: msgs, Err: err}
	}
}

// ApplyHistory finishes the initial load. On failure the message list stays
// empty and the error surfaces as a conversation-scoped banner.
func (s *Session) ApplyHistory(res HistoryResult) {
	if s.state != StateLoadingHistory {
		return
	}
	s.state = StateIdle

	if res.Err != nil {
		slog.Error("load conversation history", "error", res.Err, "conversation_id", s.conversationID)
		s.lastErr = historyFailureBanner
		return
	}
	s.messages = res.Messages
}

// SendResult carries a finished send back to its session.
type SendResult struct {
	Session *Session
	Reply   string
	Title   string
	Err     error
}

// Submit validates and stages an outgoing message. The optimistic user entry
// is appended synchronously, before any network activity; the returned thunk
// performs the send and must be routed back through ApplySend.
//
// Returns nil when the trimmed text is blank or the session is not idle;
// both are silent no-ops, not errors. At most one send is in flight at a
// time.
func (s *Session) Submit(text string) func(context.Context) SendResult {
	text = strings.TrimSpace(text)
	if text == "" || s.state != StateIdle {
		return nil
	}

	s.messages = append(s.messages, domain.NewLocalMessage(domain.RoleUser, text))
	s.state = StateSending
	s.lastErr = ""

	req := api.ChatRequest{
		UserID:         s.userID,
		ConversationID: s.conversationID,
		Message:        text,
	}
	if s.coords != nil {
		if c := s.coords.Snapshot(); c != nil {
			req.Latitude = &c.Latitude
			req.Longitude = &c.Longitude
		}
	}

	sess := s
	client := s.api
	return func(ctx context.Context) SendResult {
		resp, err := client.Chat(ctx, req)
		if err != nil {
			return SendResult{Session: sess, Err: err}
		}
		return SendResult{Session: sess, Reply: resp.Response, Title: resp.Title}
	}
}

// ApplySend reconciles a finished send. Failures are additive: the
// optimistic user entry stays and a synthesized assistant notice is
// appended alongside the error banner.
func (s *Session) ApplySend(res SendResult) {
	if s.state != StateSending {
		return
	}
	s.state = StateIdle

	if res.Err != nil {
		slog.Error("send message", "error", res.Err, "conversation_id", s.conversationID)
		s.messages = append(s.messages, domain.NewLocalMessage(domain.RoleAssistant, sendFailureNotice))
		s.lastErr = res.Err.Error()
		return
	}

	s.messages = append(s.messages, domain.NewLocalMessage(domain.RoleAssistant, res.Reply))

	if res.Title != "" && !s.closed && s.onTitle != nil {
		s.onTitle(s.conversationID, res.Title)
	}
}

// Discard marks the session abandoned after a conversation switch. In-flight
// results may still be applied to it, mutating only its own fields; effects
// on shared state, the title notification, are suppressed.
func (s *Session) Discard() {
	s.closed = true
}

func (s *Session) ConversationID() string {
	return s.conversationID
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Messages() []domain.Message {
	return s.messages
}

// LastError is the transient error banner, empty when there is none.
func (s *Session) LastError() string {
	return s.lastErr
}
