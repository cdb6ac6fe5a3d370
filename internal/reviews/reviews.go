// Package reviews creates and lists product reviews.
package reviews

import (
	"context"
	"errors"
	"strings"

	"github.com/Goga-Rid/pitza/internal/backend"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type API interface {
	CreateReview(ctx context.Context, productID int64, rating int, comment string) (*backend.Review, error)
	Reviews(ctx context.Context, productID int64) ([]backend.Review, error)
}

// CatalogInvalidator drops the cached product list after a review lands,
// since product cards carry review-derived data.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context)
}

type Service struct {
	api     API
	catalog CatalogInvalidator
}

func NewService(api API, catalog CatalogInvalidator) *Service {
	return &Service{api: api, catalog: catalog}
}

func (s *Service) Create(ctx context.Context, productID int64, rating int, comment string) (*backend.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	review, err := s.api.CreateReview(ctx, productID, rating, strings.TrimSpace(comment))
	if err != nil {
		return nil, err
	}

	if s.catalog != nil {
		s.catalog.Invalidate(ctx)
	}
	return review, nil
}

func (s *Service) List(ctx context.Context, productID int64) ([]backend.Review, error) {
	return s.api.Reviews(ctx, productID)
}
