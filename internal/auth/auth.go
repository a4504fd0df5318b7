package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atlasmove/movechat/internal/api"
)

// Service wraps the backend auth endpoints and keeps the identity store in
// sync with their outcomes.
type Service struct {
	api   *api.Client
	store *Store
}

func NewService(client *api.Client, store *Store) *Service {
	return &Service{api: client, store: store}
}

func (s *Service) Login(ctx context.Context, email, password string) (Identity, error) {
	user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return Identity{}, fmt.Errorf("login: %w", err)
	}

	id := identityFromUser(user)
	s.store.Set(id)
	slog.Info("logged in", "user_id", id.UserID, "email", id.Email)
	return id, nil
}

func (s *Service) Register(ctx context.Context, firstName, lastName, email, password string) (Identity, error) {
	user, err := s.api.Register(ctx, firstName, lastName, email, password)
	if err != nil {
		return Identity{}, fmt.Errorf("register: %w", err)
	}

	id := identityFromUser(user)
	s.store.Set(id)
	slog.Info("registered", "user_id", id.UserID, "email", id.Email)
	return id, nil
}

func (s *Service) Logout() {
	s.store.Clear()
}

func identityFromUser(u *api.AuthUser) Identity {
	return Identity{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.UserMetadata.FirstName,
		LastName:  u.UserMetadata.LastName,
	}
}
