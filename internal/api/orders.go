package api

import (
	"context"
	"net/http"
)

// CreateOrder submits an order snapshot. The result payload is not
// interesting to the storefront, only success or failure.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest, token string) error {
	return c.send(ctx, http.MethodPost, "/orders", req, token, nil)
}
