package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client talks to the Moving Assistant backend. Wire shapes mirror the
// server contract exactly.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// StatusError is returned for non-2xx backend responses.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Body)
}

type MessageDTO struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Messages []MessageDTO `json:"messages"`
}

// Messages fetches the persisted message list for a conversation,
// oldest first.
func (c *Client) Messages(ctx context.Context, conversationID string) ([]MessageDTO, error) {
	var out messagesResponse
	if err := c.do(ctx, http.MethodGet, "/conversation/"+conversationID+"/messages", nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

type ChatRequest struct {
	UserID         string   `json:"user_id"`
	ConversationID string   `json:"conversation_id"`
	Message        string   `json:"message"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
}

type ChatResponse struct {
	Response string `json:"response"`
	Title    string `json:"title,omitempty"`
}

// Chat sends one user message and returns the complete assistant response.
// Title is set only when the backend generated a conversation title for
// this exchange.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.do(ctx, http.MethodPost, "/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ConversationDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type conversationsResponse struct {
	Conversations []ConversationDTO `json:"conversations"`
}

// Conversations lists the user's conversations, most recent first.
func (c *Client) Conversations(ctx context.Context, userID string) ([]ConversationDTO, error) {
	var out conversationsResponse
	if err := c.do(ctx, http.MethodGet, "/conversations/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return out.Conversations, nil
}

type startChatRequest struct {
	UserID string `json:"user_id"`
}

type startChatResponse struct {
	ConversationID string `json:"conversation_id"`
}

// StartChat allocates a new conversation and returns its id.
func (c *Client) StartChat(ctx context.Context, userID string) (string, error) {
	var out startChatResponse
	if err := c.do(ctx, http.MethodPost, "/start_chat", startChatRequest{UserID: userID}, &out); err != nil {
		return "", err
	}
	return out.ConversationID, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type UserMetadata struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AuthUser struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

type authResponse struct {
	User AuthUser `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthUser, error) {
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Register(ctx context.Context, firstName, lastName, email, password string) (*AuthUser, error) {
	req := registerRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
	}
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		slog.Debug("backend request failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"request_id", requestID,
		)
		return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}
