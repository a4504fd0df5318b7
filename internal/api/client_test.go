package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestChatSendsContractBody(t *testing.T) {
	var raw map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"response": "Here are movers...",
			"title":    "Denver Move",
		})
	})
	client := newClient(t, mux)

	lat, lon := 39.7392, -104.9903
	resp, err := client.Chat(context.Background(), ChatRequest{
		UserID:         "u1",
		ConversationID: "c1",
		Message:        "Find movers in Denver",
		Latitude:       &lat,
		Longitude:      &lon,
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", raw["user_id"])
	assert.Equal(t, "c1", raw["conversation_id"])
	assert.Equal(t, "Find movers in Denver", raw["message"])
	assert.Equal(t, 39.7392, raw["latitude"])
	assert.Equal(t, -104.9903, raw["longitude"])

	assert.Equal(t, "Here are movers...", resp.Response)
	assert.Equal(t, "Denver Move", resp.Title)
}

func TestMessagesHitsConversationPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /conversation/c7/messages", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"messages": []map[string]string{
				{"id": "m1", "role": "user", "content": "hello"},
			},
		})
	})
	client := newClient(t, mux)

	msgs, err := client.Messages(context.Background(), "c7")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, MessageDTO{ID: "m1", Role: "user", Content: "hello"}, msgs[0])
}

func TestConversationsParsesCreatedAt(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /conversations/u1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"conversations": []map[string]string{
				{"id": "c1", "title": "Denver Move", "created_at": "2026-08-20T10:00:00Z"},
			},
		})
	})
	client := newClient(t, mux)

	convs, err := client.Conversations(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "c1", convs[0].ID)
	assert.Equal(t, time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC), convs[0].CreatedAt)
}

func TestStartChatReturnsNewID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /start_chat", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "u1", body["user_id"])
		_ = json.NewEncoder(w).Encode(map[string]string{"conversation_id": "c42"})
	})
	client := newClient(t, mux)

	id, err := client.StartChat(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "c42", id)
}

func TestLoginParsesNestedUserMetadata(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ann@example.com", body["email"])
		assert.Equal(t, "hunter2", body["password"])
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{
				"id":    "u1",
				"email": "ann@example.com",
				"user_metadata": map[string]string{
					"first_name": "Ann",
					"last_name":  "Lee",
				},
			},
		})
	})
	client := newClient(t, mux)

	user, err := client.Login(context.Background(), "ann@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Ann", user.UserMetadata.FirstName)
	assert.Equal(t, "Lee", user.UserMetadata.LastName)
}

func TestRegisterUsesCamelCaseFields(t *testing.T) {
	var raw map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{"id": "u2", "email": "bo@example.com"},
		})
	})
	client := newClient(t, mux)

	_, err := client.Register(context.Background(), "Bo", "Park", "bo@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "Bo", raw["firstName"])
	assert.Equal(t, "Park", raw["lastName"])
	assert.Equal(t, "bo@example.com", raw["email"])
}

func TestNonSuccessStatusBecomesStatusError(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Invalid login credentials"}`, http.StatusUnauthorized)
	}))

	_, err := client.Login(context.Background(), "ann@example.com", "wrong")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Status)
	assert.Contains(t, statusErr.Body, "Invalid login credentials")
}

func TestTrailingSlashInBaseURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /start_chat", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"conversation_id": "c1"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := New(srv.URL+"/", 5*time.Second)
	id, err := client.StartChat(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "c1", id)
}
