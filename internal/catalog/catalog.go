// Package catalog exposes the movie catalog: public browsing and search,
// plus the admin CRUD operations. All data lives on the backend.
package catalog

import (
	"context"
	"net/url"
	"strconv"

	"github.com/nmoreyra/cartelera/internal/api"
	"github.com/nmoreyra/cartelera/internal/domain"
)

// Query filters a catalog listing. Zero values mean "no filter".
type Query struct {
	Search string
	Genre  string
	Page   int
}

// Service provides movie catalog operations.
type Service interface {
	List(ctx context.Context, q Query) ([]domain.Movie, error)
	Get(ctx context.Context, id int64) (*domain.Movie, error)

	// Admin operations. The backend enforces the role; handlers gate the
	// routes as well.
	Create(ctx context.Context, movie domain.Movie) (*domain.Movie, error)
	Update(ctx context.Context, movie domain.Movie) (*domain.Movie, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	client *api.Client
}

// NewService creates a catalog service backed by the gateway client.
func NewService(client *api.Client) Service {
	return &service{client: client}
}

func (s *service) List(ctx context.Context, q Query) ([]domain.Movie, error) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Genre != "" {
		params.Set("genre", q.Genre)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}

	path := "/movies"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var movies []domain.Movie
	if err := s.client.Get(ctx, path, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (s *service) Get(ctx context.Context, id int64) (*domain.Movie, error) {
	var movie domain.Movie
	if err := s.client.Get(ctx, moviePath(id), &movie); err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (s *service) Create(ctx context.Context, movie domain.Movie) (*domain.Movie, error) {
	var created domain.Movie
	if err := s.client.Post(ctx, "/movies", movie, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *service) Update(ctx context.Context, movie domain.Movie) (*domain.Movie, error) {
	var updated domain.Movie
	if err := s.client.Put(ctx, moviePath(movie.ID), movie, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, moviePath(id), nil)
}

func moviePath(id int64) string {
	return "/movies/" + strconv.FormatInt(id, 10)
}
