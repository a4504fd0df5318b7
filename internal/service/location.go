package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/atlasmove/movechat/internal/config"
	"github.com/atlasmove/movechat/internal/domain"
)

// CoordinateSource yields the latest known client coordinates, or nil when
// none have been acquired yet.
type CoordinateSource interface {
	Snapshot() *domain.Coordinates
}

// LocationProbe acquires the client's coordinates at most once per process,
// best effort. Failures are logged and swallowed; messaging never waits on
// the probe.
type LocationProbe struct {
	url        string
	httpClient *http.Client
	once       sync.Once
	coords     atomic.Pointer[domain.Coordinates]
}

func NewLocationProbe(url string) *LocationProbe {
	return &LocationProbe{
		url:        url,
		httpClient: &http.Client{Timeout: config.LocationTimeout},
	}
}

// Start kicks off the one-shot acquisition in the background. Subsequent
// calls are no-ops.
func (p *LocationProbe) Start(ctx context.Context) {
	p.once.Do(func() {
		go p.acquire(ctx)
	})
}

func (p *LocationProbe) acquire(ctx context.Context) {
	coords, err := p.fetch(ctx)
	if err != nil {
		slog.Warn("could not get user location", "error", err)
		return
	}

	p.coords.Store(coords)
	slog.Debug("location acquired", "latitude", coords.Latitude, "longitude", coords.Longitude)
}

func (p *LocationProbe) fetch(ctx context.Context) (*domain.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch location: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("location service returned status %d", resp.StatusCode)
	}

	var out struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if out.Status != "success" {
		return nil, fmt.Errorf("location lookup failed: %s", out.Message)
	}

	return &domain.Coordinates{Latitude: out.Lat, Longitude: out.Lon}, nil
}

// Snapshot returns the acquired coordinates or nil. The value is written at
// most once, so readers need no synchronization beyond the atomic load.
func (p *LocationProbe) Snapshot() *domain.Coordinates {
	return p.coords.Load()
}
