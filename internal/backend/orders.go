package backend

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) Orders(ctx context.Context) ([]OrderSummary, error) {
	var orders []OrderSummary
	if err := c.do(ctx, http.MethodGet, "/user/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) Order(ctx context.Context, orderID int64) (*OrderDetails, error) {
	var details OrderDetails
	path := fmt.Sprintf("/user/orders/%d", orderID)
	if err := c.do(ctx, http.MethodGet, path, nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// CreateOrder submits aggregated cart lines as {product_id, quantity} pairs.
func (c *Client) CreateOrder(ctx context.Context, items []OrderItemRequest) (*Order, error) {
	req := struct {
		Items []OrderItemRequest `json:"items"`
	}{Items: items}

	var order Order
	if err := c.do(ctx, http.MethodPost, "/user/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
