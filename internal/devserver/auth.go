package devserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// authRequest is the body of POST /auth/token.
type authRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token         string `json:"token"`
	Authenticated bool   `json:"authenticated"`
	ExpiresIn     int64  `json:"expiresIn"`
}

// TokenHandler authenticates a user and issues a bearer token.
func TokenHandler(log *slog.Logger, store *Store, secret string, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "devserver.TokenHandler"
		logger := log.With(slog.String("op", op))

		var req authRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			writeError(w, http.StatusBadRequest, "username and password are required")
			return
		}

		user, roles, err := store.Authenticate(req.Username, req.Password)
		if err != nil {
			logger.Warn("authentication failed", slog.String("username", req.Username))
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := NewToken(user, roles, secret, ttl)
		if err != nil {
			logger.Error("failed to sign token", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		logger.Info("user authenticated", slog.String("username", user.Username))
		writeResult(w, http.StatusOK, authResponse{
			Token:         token,
			Authenticated: true,
			ExpiresIn:     int64(ttl.Seconds()),
		})
	}
}
