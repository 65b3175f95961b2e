package api

import (
	"context"
	"net/http"

	"github.com/linemk/coffee-shop/internal/domain/models"
)

// ListProducts fetches the menu. Public endpoint, no token needed.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.send(ctx, http.MethodGet, "/menus", nil, "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct adds a menu item. Admin only.
func (c *Client) CreateProduct(ctx context.Context, req ProductCreationRequest, token string) (*models.Product, error) {
	var product models.Product
	if err := c.send(ctx, http.MethodPost, "/menus", req, token, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces a menu item record.
func (c *Client) UpdateProduct(ctx context.Context, menuID string, req ProductUpdateRequest, token string) (*models.Product, error) {
	var product models.Product
	if err := c.send(ctx, http.MethodPut, "/menus/"+menuID, req, token, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a menu item.
func (c *Client) DeleteProduct(ctx context.Context, menuID, token string) error {
	return c.send(ctx, http.MethodDelete, "/menus/"+menuID, nil, token, nil)
}
