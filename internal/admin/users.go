package admin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/linemk/coffee-shop/internal/api"
	"github.com/linemk/coffee-shop/internal/domain/models"
)

// UserAPI is the slice of the backend client the user screen needs.
type UserAPI interface {
	ListUsers(ctx context.Context, token string) ([]models.User, error)
	CreateUser(ctx context.Context, req api.UserCreationRequest, token string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, req api.UserUpdateRequest, token string) (*models.User, error)
	DeleteUser(ctx context.Context, id, token string) error
}

// UserForm is the shared create/edit form. Username and password only
// matter on create; the update endpoint accepts email and roles.
type UserForm struct {
	Username string   `validate:"required_without=ID,omitempty,min=3"`
	Email    string   `validate:"required,email"`
	Password string   `validate:"required_without=ID,omitempty,min=8"`
	Roles    []string `validate:"required,min=1"`

	// ID is set when editing; it switches validation to update rules.
	ID string
}

// FormFromUser pre-fills the edit form from the selected record.
func FormFromUser(u models.User) UserForm {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Name)
	}
	if len(roles) == 0 {
		roles = []string{"USER"}
	}
	return UserForm{ID: u.ID, Username: u.Username, Email: u.Email, Roles: roles}
}

// UserManager drives the user management screen.
type UserManager struct {
	log    *slog.Logger
	api    UserAPI
	tokens TokenSource

	mu        sync.Mutex
	users     []models.User
	loading   bool
	err       error
	modal     Modal
	editingID string
}

func NewUserManager(log *slog.Logger, userAPI UserAPI, tokens TokenSource) *UserManager {
	return &UserManager{log: log, api: userAPI, tokens: tokens}
}

// Refresh refetches the user list.
func (m *UserManager) Refresh(ctx context.Context) error {
	const op = "admin.UserManager.Refresh"

	m.mu.Lock()
	m.loading = true
	m.err = nil
	m.mu.Unlock()

	users, err := m.api.ListUsers(ctx, m.tokens.Token())

	m.mu.Lock()
	m.loading = false
	if err != nil {
		m.err = err
		m.mu.Unlock()
		m.log.Error("failed to refresh users", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	m.users = users
	m.mu.Unlock()
	return nil
}

// Save validates the form and dispatches create or update, then refetches.
func (m *UserManager) Save(ctx context.Context, existing *models.User, form UserForm) error {
	const op = "admin.UserManager.Save"
	logger := m.log.With(slog.String("op", op))

	if existing != nil {
		form.ID = existing.ID
	}
	if err := validate.Struct(form); err != nil {
		return err
	}

	var err error
	if existing == nil {
		_, err = m.api.CreateUser(ctx, api.UserCreationRequest{
			Username: form.Username,
			Email:    form.Email,
			Password: form.Password,
			Roles:    form.Roles,
		}, m.tokens.Token())
	} else {
		_, err = m.api.UpdateUser(ctx, existing.ID, api.UserUpdateRequest{
			Email: form.Email,
			Roles: form.Roles,
		}, m.tokens.Token())
	}
	if err != nil {
		logger.Warn("save failed", slog.Any("error", err))
		return err
	}

	m.CloseModal()
	return m.Refresh(ctx)
}

// Delete asks confirm before issuing the destructive call.
func (m *UserManager) Delete(ctx context.Context, id string, confirm func() bool) error {
	const op = "admin.UserManager.Delete"
	logger := m.log.With(slog.String("op", op), slog.String("userID", id))

	if !confirm() {
		logger.Debug("delete declined")
		return nil
	}
	if err := m.api.DeleteUser(ctx, id, m.tokens.Token()); err != nil {
		logger.Warn("delete failed", slog.Any("error", err))
		return err
	}
	return m.Refresh(ctx)
}

func (m *UserManager) OpenCreate() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.modal != ModalNone {
		return ErrModalOpen
	}
	m.modal = ModalCreate
	m.editingID = ""
	return nil
}

func (m *UserManager) OpenEdit(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.modal != ModalNone {
		return ErrModalOpen
	}
	m.modal = ModalEdit
	m.editingID = id
	return nil
}

func (m *UserManager) CloseModal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modal = ModalNone
	m.editingID = ""
}

func (m *UserManager) Modal() Modal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modal
}

// Editing returns the record behind the edit modal, nil otherwise.
func (m *UserManager) Editing() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.modal != ModalEdit {
		return nil
	}
	for i := range m.users {
		if m.users[i].ID == m.editingID {
			u := m.users[i]
			return &u
		}
	}
	return nil
}

func (m *UserManager) Users() []models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, len(m.users))
	copy(out, m.users)
	return out
}

func (m *UserManager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *UserManager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}
