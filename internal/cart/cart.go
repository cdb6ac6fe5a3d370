package cart

import (
	"time"

	"github.com/Goga-Rid/pitza/internal/backend"
)

// Line is one product selection. The stored list may in principle hold
// split lines for the same product; display and submission always go
// through Aggregate, which merges them.
type Line struct {
	Product  backend.Product `json:"product"`
	Quantity int             `json:"quantity"`
	AddedAt  time.Time       `json:"added_at"`
}

// Subtotal is the line price times quantity.
func (l Line) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// Aggregate is the cart as rendered and submitted: one line per product,
// quantities summed.
type Aggregate struct {
	Lines []Line
	Total float64
	Count int
}

// aggregate groups lines by product id and sums quantities, preserving the
// order products first appeared.
func aggregate(lines []Line) Aggregate {
	var agg Aggregate
	index := make(map[int64]int)

	for _, line := range lines {
		if i, ok := index[line.Product.ID]; ok {
			agg.Lines[i].Quantity += line.Quantity
			continue
		}
		index[line.Product.ID] = len(agg.Lines)
		agg.Lines = append(agg.Lines, line)
	}

	for _, line := range agg.Lines {
		agg.Total += line.Product.Price * float64(line.Quantity)
		agg.Count += line.Quantity
	}
	return agg
}

// Items converts aggregated lines into the order-creation payload.
func (a Aggregate) Items() []backend.OrderItemRequest {
	items := make([]backend.OrderItemRequest, len(a.Lines))
	for i, line := range a.Lines {
		items[i] = backend.OrderItemRequest{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
		}
	}
	return items
}
