package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/linemk/coffee-shop/internal/api"
	"github.com/linemk/coffee-shop/internal/domain/models"
)

// UserRole is the default role granted on public registration.
const UserRole = "USER"

// ErrPasswordMismatch is a local validation failure: no request is
// issued when the two password fields disagree.
var ErrPasswordMismatch = errors.New("passwords do not match")

// RegisterForm is the public sign-up form. Validation runs client-side
// before any network call.
type RegisterForm struct {
	Username        string `validate:"required,min=3"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=8"`
	ConfirmPassword string `validate:"required"`
}

var validate = validator.New()

// Register creates an account with the default USER role. It does not
// log the new user in; the caller sends them to the login flow.
func (s *Store) Register(ctx context.Context, form RegisterForm) (*models.User, error) {
	const op = "session.Store.Register"
	logger := s.log.With(slog.String("op", op), slog.String("username", form.Username))

	if form.Password != form.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if err := validate.Struct(form); err != nil {
		logger.Debug("registration form rejected", slog.Any("error", err))
		return nil, err
	}

	user, err := s.auth.Register(ctx, api.UserCreationRequest{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		Roles:    []string{UserRole},
	})
	if err != nil {
		logger.Warn("registration failed", slog.Any("error", err))
		return nil, err
	}

	logger.Info("user registered", slog.String("userID", user.ID))
	return user, nil
}
