package backend

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a token and the user record. Persisting
// the token is the caller's job.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidateToken reports whether the currently held token is still accepted.
func (c *Client) ValidateToken(ctx context.Context) (bool, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/validate", nil, &resp); err != nil {
		return false, err
	}
	return resp.Status == "valid", nil
}

func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, upd UserUpdate) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, "/me", upd, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
