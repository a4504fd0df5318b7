package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeAcquiresCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"lat":    39.7392,
			"lon":    -104.9903,
		})
	}))
	t.Cleanup(srv.Close)

	p := NewLocationProbe(srv.URL)
	require.Nil(t, p.Snapshot())

	p.acquire(context.Background())

	coords := p.Snapshot()
	require.NotNil(t, coords)
	assert.Equal(t, 39.7392, coords.Latitude)
	assert.Equal(t, -104.9903, coords.Longitude)
}

func TestProbeFailuresAreSwallowed(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "lookup rejected",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]string{
					"status":  "fail",
					"message": "private range",
				})
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusInternalServerError)
			},
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			t.Cleanup(srv.Close)

			p := NewLocationProbe(srv.URL)
			p.acquire(context.Background())
			assert.Nil(t, p.Snapshot())
		})
	}
}

func TestProbeUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NewServeMux())
	url := srv.URL
	srv.Close()

	p := NewLocationProbe(url)
	p.acquire(context.Background())
	assert.Nil(t, p.Snapshot())
}
