package devserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

type orderItemRequest struct {
	MenuID   string `json:"menuId" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

type createOrderRequest struct {
	UserID string             `json:"userId" validate:"required"`
	Items  []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrderHandler handles POST /orders. The order must belong to the
// authenticated user.
func CreateOrderHandler(log *slog.Logger, store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "devserver.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		var req createOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid order data")
			return
		}
		if req.UserID != identity.UserID {
			writeError(w, http.StatusForbidden, "order user mismatch")
			return
		}

		items := make([]OrderItem, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, OrderItem{MenuID: it.MenuID, Quantity: it.Quantity})
		}

		order, err := store.CreateOrder(req.UserID, items)
		if err != nil {
			switch {
			case errors.Is(err, ErrUserNotFound):
				writeError(w, http.StatusBadRequest, "user not found")
			case errors.Is(err, ErrMenuNotFound):
				writeError(w, http.StatusBadRequest, "menu item not found")
			default:
				logger.Error("failed to create order", slog.Any("error", err))
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		logger.Info("order created",
			slog.String("orderID", order.ID),
			slog.Float64("total", order.Total),
		)
		writeResult(w, http.StatusOK, order)
	}
}
