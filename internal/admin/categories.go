package admin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/linemk/coffee-shop/internal/api"
	"github.com/linemk/coffee-shop/internal/domain/models"
)

// CategoryAPI is the slice of the backend client the category screen needs.
type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, req api.CategoryCreationRequest, token string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, req api.CategoryUpdateRequest, token string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id, token string) error
}

// CategoryForm is the shared create/edit form.
type CategoryForm struct {
	Name        string `validate:"required"`
	Description string
}

// FormFromCategory pre-fills the edit form from the selected record.
func FormFromCategory(c models.Category) CategoryForm {
	return CategoryForm{Name: c.Name, Description: c.Description}
}

// CategoryManager drives the category management screen.
type CategoryManager struct {
	log    *slog.Logger
	api    CategoryAPI
	tokens TokenSource

	mu         sync.Mutex
	categories []models.Category
	loading    bool
	err        error
	modal      Modal
	editingID  string
}

func NewCategoryManager(log *slog.Logger, categoryAPI CategoryAPI, tokens TokenSource) *CategoryManager {
	return &CategoryManager{log: log, api: categoryAPI, tokens: tokens}
}

// Refresh refetches the category list.
func (m *CategoryManager) Refresh(ctx context.Context) error {
	const op = "admin.CategoryManager.Refresh"

	m.mu.Lock()
	m.loading = true
	m.err = nil
	m.mu.Unlock()

	categories, err := m.api.ListCategories(ctx)

	m.mu.Lock()
	m.loading = false
	if err != nil {
		m.err = err
		m.mu.Unlock()
		m.log.Error("failed to refresh categories", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	m.categories = categories
	m.mu.Unlock()
	return nil
}

// Save validates the form, dispatches create or update, then refetches.
func (m *CategoryManager) Save(ctx context.Context, existing *models.Category, form CategoryForm) error {
	const op = "admin.CategoryManager.Save"
	logger := m.log.With(slog.String("op", op))

	if err := validate.Struct(form); err != nil {
		return err
	}

	req := api.CategoryCreationRequest{Name: form.Name, Description: form.Description}

	var err error
	if existing == nil {
		_, err = m.api.CreateCategory(ctx, req, m.tokens.Token())
	} else {
		_, err = m.api.UpdateCategory(ctx, existing.ID, req, m.tokens.Token())
	}
	if err != nil {
		logger.Warn("save failed", slog.Any("error", err))
		return err
	}

	m.CloseModal()
	return m.Refresh(ctx)
}

// Delete asks confirm before issuing the destructive call.
func (m *CategoryManager) Delete(ctx context.Context, id string, confirm func() bool) error {
	const op = "admin.CategoryManager.Delete"
	logger := m.log.With(slog.String("op", op), slog.String("categoryID", id))

	if !confirm() {
		logger.Debug("delete declined")
		return nil
	}
	if err := m.api.DeleteCategory(ctx, id, m.tokens.Token()); err != nil {
		logger.Warn("delete failed", slog.Any("error", err))
		return err
	}
	return m.Refresh(ctx)
}

func (m *CategoryManager) OpenCreate() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.modal != ModalNone {
		return ErrModalOpen
	}
	m.modal = ModalCreate
	m.editingID = ""
	return nil
}

func (m *CategoryManager) OpenEdit(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.modal != ModalNone {
		return ErrModalOpen
	}
	m.modal = ModalEdit
	m.editingID = id
	return nil
}

func (m *CategoryManager) CloseModal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modal = ModalNone
	m.editingID = ""
}

func (m *CategoryManager) Modal() Modal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modal
}

// Editing returns the record behind the edit modal, nil otherwise.
func (m *CategoryManager) Editing() *models.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.modal != ModalEdit {
		return nil
	}
	for i := range m.categories {
		if m.categories[i].ID == m.editingID {
			c := m.categories[i]
			return &c
		}
	}
	return nil
}

func (m *CategoryManager) Categories() []models.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Category, len(m.categories))
	copy(out, m.categories)
	return out
}

func (m *CategoryManager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *CategoryManager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}
