package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/coffee-shop/internal/api"
	"github.com/linemk/coffee-shop/internal/domain/models"
)

// ErrLoginRequired means the user tried to check out without an
// authenticated session. It is a control-flow escape for the UI (close
// the cart, open the login form), not a server error.
var ErrLoginRequired = errors.New("login required")

// OrdersAPI is the slice of the backend client checkout needs.
type OrdersAPI interface {
	CreateOrder(ctx context.Context, req api.CreateOrderRequest, token string) error
}

// Session is what checkout needs to know about the current user.
type Session interface {
	IsAuthenticated() bool
	Token() string
	User() *models.User
}

// Cart is the mutable cart checkout snapshots and, on success, clears.
type Cart interface {
	Items() []models.CartItem
	Clear()
}

// Service submits orders. One attempt per user action; a failed order
// leaves the cart intact so the user can retry manually.
type Service struct {
	log *slog.Logger
	api OrdersAPI
}

func NewService(log *slog.Logger, api OrdersAPI) *Service {
	return &Service{log: log, api: api}
}

// PlaceOrder checks preconditions in order, then submits a snapshot of
// the cart tagged with the acting user's id.
//
//   - unauthenticated session: ErrLoginRequired, nothing else happens
//   - empty cart or missing token: silent no-op, no request issued
//   - submit failure: error returned, cart untouched
//   - submit success: cart cleared
func (s *Service) PlaceOrder(ctx context.Context, sess Session, cart Cart) error {
	const op = "checkout.Service.PlaceOrder"
	logger := s.log.With(slog.String("op", op))

	if !sess.IsAuthenticated() {
		logger.Debug("checkout without session")
		return ErrLoginRequired
	}

	items := cart.Items()
	token := sess.Token()
	if len(items) == 0 || token == "" {
		return nil
	}

	user := sess.User()
	req := api.CreateOrderRequest{
		UserID: user.ID,
		Items:  make([]api.OrderItemRequest, 0, len(items)),
	}
	for _, item := range items {
		req.Items = append(req.Items, api.OrderItemRequest{
			MenuID:   item.Product.ID,
			Quantity: item.Quantity,
		})
	}

	if err := s.api.CreateOrder(ctx, req, token); err != nil {
		logger.Warn("order submission failed", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	cart.Clear()
	logger.Info("order placed",
		slog.String("userID", user.ID),
		slog.Int("lines", len(items)),
	)
	return nil
}
