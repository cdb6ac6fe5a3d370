// Package orders reads the order history. Status lives entirely on the
// backend; this side only displays it.
package orders

import (
	"context"

	"github.com/Goga-Rid/pitza/internal/backend"
)

type API interface {
	Orders(ctx context.Context) ([]backend.OrderSummary, error)
	Order(ctx context.Context, orderID int64) (*backend.OrderDetails, error)
}

type Service struct {
	api API
}

func NewService(api API) *Service {
	return &Service{api: api}
}

func (s *Service) List(ctx context.Context) ([]backend.OrderSummary, error) {
	return s.api.Orders(ctx)
}

// DetailedItem is an order item joined with its product for display.
type DetailedItem struct {
	Item    backend.OrderItem
	Product *backend.Product // nil when no longer in the catalog
}

type Details struct {
	Order backend.Order
	Items []DetailedItem
}

// Get fetches one order and joins its items with the given catalog so the
// view can show names and images next to quantities.
func (s *Service) Get(ctx context.Context, orderID int64, products []backend.Product) (*Details, error) {
	details, err := s.api.Order(ctx, orderID)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]backend.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]DetailedItem, len(details.OrderItems))
	for i, item := range details.OrderItems {
		items[i] = DetailedItem{Item: item}
		if p, ok := byID[item.ProductVariantID]; ok {
			items[i].Product = &p
		}
	}

	return &Details{Order: details.Order, Items: items}, nil
}
