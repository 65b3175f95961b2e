package api

import (
	"context"
	"net/http"

	"github.com/linemk/coffee-shop/internal/domain/models"
)

// ListCategories fetches all categories. Public endpoint.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.send(ctx, http.MethodGet, "/categories", nil, "", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory adds a category. Admin only.
func (c *Client) CreateCategory(ctx context.Context, req CategoryCreationRequest, token string) (*models.Category, error) {
	var category models.Category
	if err := c.send(ctx, http.MethodPost, "/categories", req, token, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory replaces a category record.
func (c *Client) UpdateCategory(ctx context.Context, id string, req CategoryUpdateRequest, token string) (*models.Category, error) {
	var category models.Category
	if err := c.send(ctx, http.MethodPut, "/categories/"+id, req, token, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id, token string) error {
	return c.send(ctx, http.MethodDelete, "/categories/"+id, nil, token, nil)
}
