// Package favorites keeps a per-product favorite flag in step with the
// server-held list: flip locally first, confirm against the backend, refetch
// to reconcile. A failed request rolls the local flip back rather than
// leaving the UI lying.
package favorites

import (
	"context"
	"log"
	"sync"

	"github.com/Goga-Rid/pitza/internal/backend"
)

// API is the slice of the backend client this package needs. Removal is by
// product id, the contract this repo is pinned to.
type API interface {
	Favorites(ctx context.Context) ([]backend.Favorite, error)
	AddFavorite(ctx context.Context, productID int64) (*backend.Favorite, error)
	RemoveFavorite(ctx context.Context, productID int64) error
}

type Service struct {
	mu        sync.RWMutex
	api       API
	favorites map[int64]backend.Favorite // keyed by product id
}

func NewService(api API) *Service {
	return &Service{
		api:       api,
		favorites: make(map[int64]backend.Favorite),
	}
}

// Refresh replaces the local membership view with the server list and
// returns it. This is the reconciliation step other views depend on.
func (s *Service) Refresh(ctx context.Context) ([]backend.Favorite, error) {
	list, err := s.api.Favorites(ctx)
	if err != nil {
		return nil, err
	}

	favorites := make(map[int64]backend.Favorite, len(list))
	for _, fav := range list {
		favorites[fav.ProductID] = fav
	}

	s.mu.Lock()
	s.favorites = favorites
	s.mu.Unlock()
	return list, nil
}

func (s *Service) IsFavorite(productID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favorites[productID]
	return ok
}

// Toggle flips membership optimistically, issues the matching request, and
// reconciles on success. On failure the optimistic flip is rolled back and
// the error returned; reported membership is then unchanged.
func (s *Service) Toggle(ctx context.Context, productID int64) (bool, error) {
	s.mu.Lock()
	_, was := s.favorites[productID]
	if was {
		delete(s.favorites, productID)
	} else {
		s.favorites[productID] = backend.Favorite{ProductID: productID}
	}
	s.mu.Unlock()

	var err error
	if was {
		err = s.api.RemoveFavorite(ctx, productID)
	} else {
		_, err = s.api.AddFavorite(ctx, productID)
	}

	if err != nil {
		s.mu.Lock()
		if was {
			s.favorites[productID] = backend.Favorite{ProductID: productID}
		} else {
			delete(s.favorites, productID)
		}
		s.mu.Unlock()
		return was, err
	}

	if _, err := s.Refresh(ctx); err != nil {
		// The mutation itself succeeded; keep the optimistic state and let
		// the next refetch reconcile.
		log.Printf("favorites refresh error: %v", err)
	}
	return !was, nil
}
