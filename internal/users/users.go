// Package users provides the admin-only user management operations.
// Authentication state itself lives in the session package.
package users

import (
	"context"
	"strconv"

	"github.com/nmoreyra/cartelera/internal/api"
	"github.com/nmoreyra/cartelera/internal/domain"
)

// Service lists and removes accounts. Admin only; the backend enforces
// the role on every call.
type Service interface {
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	client *api.Client
}

// NewService creates a user management service backed by the gateway client.
func NewService(client *api.Client) Service {
	return &service{client: client}
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	var list []domain.User
	if err := s.client.Get(ctx, "/users", &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, "/users/"+strconv.FormatInt(id, 10), nil)
}
