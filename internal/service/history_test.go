package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasmove/movechat/internal/api"
	"github.com/atlasmove/movechat/internal/domain"
)

func TestHistoryLoaderPreservesOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /conversation/c1/messages", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"messages": []map[string]string{
				{"id": "m1", "role": "user", "content": "Find movers in Denver"},
				{"id": "m2", "role": "assistant", "content": "Here are movers..."},
			},
		})
	})
	client := newBackend(t, mux)

	msgs, err := NewHistoryLoader(client).Load(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.Message{ID: "m1", Role: domain.RoleUser, Content: "Find movers in Denver"}, msgs[0])
	assert.Equal(t, domain.Message{ID: "m2", Role: domain.RoleAssistant, Content: "Here are movers..."}, msgs[1])
}

func TestHistoryLoaderReportsStatusErrors(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	msgs, err := NewHistoryLoader(client).Load(context.Background(), "c1")
	require.Error(t, err)
	assert.Nil(t, msgs)

	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Status)
}
