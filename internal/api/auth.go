package api

import (
	"context"
	"net/http"

	"github.com/linemk/coffee-shop/internal/domain/models"
)

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req AuthenticationRequest) (*AuthenticationResponse, error) {
	var resp AuthenticationResponse
	if err := c.send(ctx, http.MethodPost, "/auth/token", req, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account through the public POST /users endpoint.
func (c *Client) Register(ctx context.Context, req UserCreationRequest) (*models.User, error) {
	var user models.User
	if err := c.send(ctx, http.MethodPost, "/users", req, "", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// MyInfo resolves the identity behind a token. A failure here usually
// means the token expired; callers treat that as an implicit logout.
func (c *Client) MyInfo(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.send(ctx, http.MethodGet, "/users/myInfo", nil, token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
