package backend

import (
	"context"
	"fmt"
	"net/http"
)

// Products returns the catalog grouped by category, the shape this backend
// variant serves.
func (c *Client) Products(ctx context.Context) (map[string][]Product, error) {
	var products map[string][]Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Favorites(ctx context.Context) ([]Favorite, error) {
	var favorites []Favorite
	if err := c.do(ctx, http.MethodGet, "/user/favorites", nil, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

func (c *Client) AddFavorite(ctx context.Context, productID int64) (*Favorite, error) {
	req := struct {
		ProductID int64 `json:"product_id"`
	}{ProductID: productID}

	var fav Favorite
	if err := c.do(ctx, http.MethodPost, "/user/favorites", req, &fav); err != nil {
		return nil, err
	}
	return &fav, nil
}

// RemoveFavorite deletes by product id in the request body. The
// favorite-record id never crosses this boundary; the other observed backend
// variant (DELETE /user/favorites/{id}) is not supported.
func (c *Client) RemoveFavorite(ctx context.Context, productID int64) error {
	req := struct {
		ProductID int64 `json:"product_id"`
	}{ProductID: productID}
	return c.do(ctx, http.MethodDelete, "/user/favorites", req, nil)
}

func (c *Client) Reviews(ctx context.Context, productID int64) ([]Review, error) {
	var reviews []Review
	path := fmt.Sprintf("/user/reviews/%d", productID)
	if err := c.do(ctx, http.MethodGet, path, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) CreateReview(ctx context.Context, productID int64, rating int, comment string) (*Review, error) {
	req := struct {
		ProductID int64  `json:"product_id"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}{ProductID: productID, Rating: rating, Comment: comment}

	var review Review
	if err := c.do(ctx, http.MethodPost, "/user/reviews", req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
