package devserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type menuRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"basePrice" validate:"gte=0"`
	CategoryID  string  `json:"categoryId" validate:"required"`
}

// ListMenusHandler handles GET /menus. Public, no token required.
func ListMenusHandler(log *slog.Logger, store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, http.StatusOK, store.ListProducts())
	}
}

// CreateMenuHandler handles POST /menus.
func CreateMenuHandler(log *slog.Logger, store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "devserver.CreateMenuHandler"
		logger := log.With(slog.String("op", op))

		var req menuRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid menu data")
			return
		}

		product, err := store.CreateProduct(req.Name, req.Description, req.BasePrice, req.CategoryID)
		if err != nil {
			if errors.Is(err, ErrCategoryNotFound) {
				writeError(w, http.StatusBadRequest, "category not found")
				return
			}
			logger.Error("failed to create menu item", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		logger.Info("menu item created", slog.String("name", product.Name))
		writeResult(w, http.StatusOK, product)
	}
}

// UpdateMenuHandler handles PUT /menus/{id}.
func UpdateMenuHandler(log *slog.Logger, store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "devserver.UpdateMenuHandler"
		logger := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")

		var req menuRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid menu data")
			return
		}

		product, err := store.UpdateProduct(id, req.Name, req.Description, req.BasePrice, req.CategoryID)
		if err != nil {
			switch {
			case errors.Is(err, ErrMenuNotFound):
				writeError(w, http.StatusNotFound, "menu item not found")
			case errors.Is(err, ErrCategoryNotFound):
				writeError(w, http.StatusBadRequest, "category not found")
			default:
				logger.Error("failed to update menu item", slog.Any("error", err))
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		writeResult(w, http.StatusOK, product)
	}
}

// DeleteMenuHandler handles DELETE /menus/{id}.
func DeleteMenuHandler(log *slog.Logger, store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "devserver.DeleteMenuHandler"

		id := chi.URLParam(r, "id")
		if err := store.DeleteProduct(id); err != nil {
			writeError(w, http.StatusNotFound, "menu item not found")
			return
		}
		log.Info("menu item deleted", slog.String("op", op), slog.String("menuID", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
