package devserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// userCreationRequest serves both public registration and the admin
// user screen; the endpoint is the same.
type userCreationRequest struct {
	Username string   `json:"username" validate:"required,min=3"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Roles    []string `json:"roles" validate:"required,min=1"`
}

type userUpdateRequest struct {
	Email string   `json:"email" validate:"required,email"`
	Roles []string `json:"roles" validate:"required,min=1"`
}

// CreateUserHandler handles POST /users.
func CreateUserHandler(log *slog.Logger, store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "devserver.CreateUserHandler"
		logger := log.With(slog.String("op", op))

		var req userCreationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Debug("validation error", slog.Any("error", err))
			writeError(w, http.StatusBadRequest, "invalid user data")
			return
		}

		user, err := store.CreateUser(req.Username, req.Email, req.Password, req.Roles)
		if err != nil {
			if errors.Is(err, ErrUsernameTaken) {
				writeError(w, http.StatusConflict, "username already taken")
				return
			}
			logger.Error("failed to create user", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		logger.Info("user created", slog.String("username", user.Username))
		writeResult(w, http.StatusOK, user)
	}
}

// MyInfoHandler handles GET /users/myInfo. The response deliberately
// omits roles, matching the real backend.
func MyInfoHandler(log *slog.Logger, store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "devserver.MyInfoHandler"

		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		user, err := store.UserByID(identity.UserID)
		if err != nil {
			log.Warn("token references unknown user", slog.String("op", op), slog.String("userID", identity.UserID))
			writeError(w, http.StatusUnauthorized, "unknown user")
			return
		}
		writeResult(w, http.StatusOK, user)
	}
}

// ListUsersHandler handles GET /users.
func ListUsersHandler(log *slog.Logger, store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, http.StatusOK, store.ListUsers())
	}
}

// UpdateUserHandler handles PUT /users/{id}.
func UpdateUserHandler(log *slog.Logger, store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "devserver.UpdateUserHandler"
		logger := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")

		var req userUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid user data")
			return
		}

		user, err := store.UpdateUser(id, req.Email, req.Roles)
		if err != nil {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		logger.Info("user updated", slog.String("userID", id))
		writeResult(w, http.StatusOK, user)
	}
}

// DeleteUserHandler handles DELETE /users/{id}.
func DeleteUserHandler(log *slog.Logger, store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "devserver.DeleteUserHandler"

		id := chi.URLParam(r, "id")
		if err := store.DeleteUser(id); err != nil {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Info("user deleted", slog.String("op", op), slog.String("userID", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
