package api

import (
	"context"
	"net/http"

	"github.com/linemk/coffee-shop/internal/domain/models"
)

// ListUsers fetches all accounts. Admin only.
func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	if err := c.send(ctx, http.MethodGet, "/users", nil, token, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates an account on behalf of an admin.
func (c *Client) CreateUser(ctx context.Context, req UserCreationRequest, token string) (*models.User, error) {
	var user models.User
	if err := c.send(ctx, http.MethodPost, "/users", req, token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces the mutable fields of an account.
func (c *Client) UpdateUser(ctx context.Context, id string, req UserUpdateRequest, token string) (*models.User, error) {
	var user models.User
	if err := c.send(ctx, http.MethodPut, "/users/"+id, req, token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id, token string) error {
	return c.send(ctx, http.MethodDelete, "/users/"+id, nil, token, nil)
}
