// Package catalog fetches and filters the product list. Products are
// read-only from the client's perspective; the only mutation is cache
// invalidation after something server-side (a new review) changes them.
package catalog

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/Goga-Rid/pitza/internal/backend"
	"golang.org/x/sync/singleflight"
)

// ProductAPI is the slice of the backend client this package needs.
type ProductAPI interface {
	Products(ctx context.Context) (map[string][]backend.Product, error)
}

// Cache holds the fetched catalog between requests.
// Consumers define this interface, not the redis implementation.
type Cache interface {
	Get(ctx context.Context) (map[string][]backend.Product, error)
	Set(ctx context.Context, products map[string][]backend.Product) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")

type Service struct {
	api   ProductAPI
	cache Cache // nil disables caching
	sfg   singleflight.Group // Prevents concurrent duplicate fetches
}

func NewService(api ProductAPI, cache Cache) *Service {
	return &Service{
		api:   api,
		cache: cache,
	}
}

// Products returns the catalog grouped by category. Concurrent callers
// share one backend fetch via singleflight; cache errors are logged and the
// backend is asked directly.
func (s *Service) Products(ctx context.Context) (map[string][]backend.Product, error) {
	v, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		if s.cache != nil {
			products, err := s.cache.Get(ctx)
			if err == nil {
				return products, nil
			}
			if !errors.Is(err, ErrCacheMiss) {
				log.Printf("catalog cache get error: %v", err)
			}
		}

		products, err := s.api.Products(ctx)
		if err != nil {
			return nil, err
		}

		if s.cache != nil {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if err := s.cache.Set(ctx, products); err != nil {
					log.Printf("catalog cache set error: %v", err)
				}
			}()
		}

		return products, nil
	})

	if err != nil {
		return nil, err
	}
	return v.(map[string][]backend.Product), nil
}

// All flattens the category map into one list, categories in sorted order
// so rendering is stable.
func (s *Service) All(ctx context.Context) ([]backend.Product, error) {
	byCategory, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var all []backend.Product
	for _, category := range categories {
		all = append(all, byCategory[category]...)
	}
	return all, nil
}

// Invalidate drops the cached catalog so the next fetch sees fresh data.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx); err != nil {
		log.Printf("catalog cache invalidate error: %v", err)
	}
}
