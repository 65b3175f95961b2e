package devserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type categoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// ListCategoriesHandler handles GET /categories. Public, no token required.
func ListCategoriesHandler(log *slog.Logger, store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, http.StatusOK, store.ListCategories())
	}
}

// CreateCategoryHandler handles POST /categories.
func CreateCategoryHandler(log *slog.Logger, store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "devserver.CreateCategoryHandler"
		logger := log.With(slog.String("op", op))

		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid category data")
			return
		}

		category, err := store.CreateCategory(req.Name, req.Description)
		if err != nil {
			logger.Error("failed to create category", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		logger.Info("category created", slog.String("name", category.Name))
		writeResult(w, http.StatusOK, category)
	}
}

// UpdateCategoryHandler handles PUT /categories/{id}.
func UpdateCategoryHandler(log *slog.Logger, store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "devserver.UpdateCategoryHandler"
		logger := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")

		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid category data")
			return
		}

		category, err := store.UpdateCategory(id, req.Name, req.Description)
		if err != nil {
			if errors.Is(err, ErrCategoryNotFound) {
				writeError(w, http.StatusNotFound, "category not found")
				return
			}
			logger.Error("failed to update category", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeResult(w, http.StatusOK, category)
	}
}

// DeleteCategoryHandler handles DELETE /categories/{id}. Categories still
// referenced by menu items cannot be removed.
func DeleteCategoryHandler(log *slog.Logger, store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "devserver.DeleteCategoryHandler"

		id := chi.URLParam(r, "id")
		if err := store.DeleteCategory(id); err != nil {
			if errors.Is(err, ErrCategoryInUse) {
				writeError(w, http.StatusConflict, "category in use")
				return
			}
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		log.Info("category deleted", slog.String("op", op), slog.String("categoryID", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
