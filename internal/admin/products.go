package admin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/linemk/coffee-shop/internal/api"
	"github.com/linemk/coffee-shop/internal/domain/models"
)

// ProductAPI is the slice of the backend client the product screen needs.
// The category list rides along for the form's category picker.
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateProduct(ctx context.Context, req api.ProductCreationRequest, token string) (*models.Product, error)
	UpdateProduct(ctx context.Context, menuID string, req api.ProductUpdateRequest, token string) (*models.Product, error)
	DeleteProduct(ctx context.Context, menuID, token string) error
}

// ProductForm is the shared create/edit form. A missing category
// selection is caught here, before any request goes out.
type ProductForm struct {
	Name        string  `validate:"required"`
	Description string
	BasePrice   float64 `validate:"gte=0"`
	CategoryID  string  `validate:"required"`
}

// FormFromProduct pre-fills the edit form from the selected record.
func FormFromProduct(p models.Product) ProductForm {
	return ProductForm{
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   p.BasePrice,
		CategoryID:  p.Category.ID,
	}
}

// ProductManager drives the menu management screen.
type ProductManager struct {
	log    *slog.Logger
	api    ProductAPI
	tokens TokenSource

	mu         sync.Mutex
	products   []models.Product
	categories []models.Category
	loading    bool
	err        error
	modal      Modal
	editingID  string
}

func NewProductManager(log *slog.Logger, productAPI ProductAPI, tokens TokenSource) *ProductManager {
	return &ProductManager{log: log, api: productAPI, tokens: tokens}
}

// Refresh refetches the product list and the category picker data.
// Called on mount and after every mutation.
func (m *ProductManager) Refresh(ctx context.Context) error {
	const op = "admin.ProductManager.Refresh"
	logger := m.log.With(slog.String("op", op))

	m.mu.Lock()
	m.loading = true
	m.err = nil
	m.mu.Unlock()

	products, err := m.api.ListProducts(ctx)
	if err == nil {
		var categories []models.Category
		categories, err = m.api.ListCategories(ctx)
		if err == nil {
			m.mu.Lock()
			m.products = products
			m.categories = categories
			m.loading = false
			m.mu.Unlock()
			return nil
		}
	}

	logger.Error("failed to refresh products", slog.Any("error", err))
	m.mu.Lock()
	m.loading = false
	m.err = err
	m.mu.Unlock()
	return fmt.Errorf("%s: %w", op, err)
}

// Save validates the form and dispatches create or update depending on
// whether an existing record was passed in, then refetches the list.
func (m *ProductManager) Save(ctx context.Context, existing *models.Product, form ProductForm) error {
	const op = "admin.ProductManager.Save"
	logger := m.log.With(slog.String("op", op))

	if err := validate.Struct(form); err != nil {
		return err
	}

	req := api.ProductCreationRequest{
		Name:        form.Name,
		Description: form.Description,
		BasePrice:   form.BasePrice,
		CategoryID:  form.CategoryID,
	}

	var err error
	if existing == nil {
		_, err = m.api.CreateProduct(ctx, req, m.tokens.Token())
	} else {
		_, err = m.api.UpdateProduct(ctx, existing.ID, req, m.tokens.Token())
	}
	if err != nil {
		logger.Warn("save failed", slog.Any("error", err))
		return err
	}

	m.CloseModal()
	return m.Refresh(ctx)
}

// Delete asks confirm before issuing the destructive call. Declining
// means nothing is sent. On failure the list is left untouched; on
// success the list is refetched.
func (m *ProductManager) Delete(ctx context.Context, menuID string, confirm func() bool) error {
	const op = "admin.ProductManager.Delete"
	logger := m.log.With(slog.String("op", op), slog.String("menuID", menuID))

	if !confirm() {
		logger.Debug("delete declined")
		return nil
	}
	if err := m.api.DeleteProduct(ctx, menuID, m.tokens.Token()); err != nil {
		logger.Warn("delete failed", slog.Any("error", err))
		return err
	}
	return m.Refresh(ctx)
}

// OpenCreate opens the blank form. Fails if a modal is already open.
func (m *ProductManager) OpenCreate() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.modal != ModalNone {
		return ErrModalOpen
	}
	m.modal = ModalCreate
	m.editingID = ""
	return nil
}

// OpenEdit opens the form pre-filled from the product with the given id.
func (m *ProductManager) OpenEdit(menuID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.modal != ModalNone {
		return ErrModalOpen
	}
	m.modal = ModalEdit
	m.editingID = menuID
	return nil
}

func (m *ProductManager) CloseModal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modal = ModalNone
	m.editingID = ""
}

func (m *ProductManager) Modal() Modal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modal
}

// Editing returns the record behind the edit modal, nil otherwise.
func (m *ProductManager) Editing() *models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.modal != ModalEdit {
		return nil
	}
	for i := range m.products {
		if m.products[i].ID == m.editingID {
			p := m.products[i]
			return &p
		}
	}
	return nil
}

func (m *ProductManager) Products() []models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Product, len(m.products))
	copy(out, m.products)
	return out
}

func (m *ProductManager) Categories() []models.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Category, len(m.categories))
	copy(out, m.categories)
	return out
}

func (m *ProductManager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *ProductManager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}
