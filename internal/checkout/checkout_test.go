package checkout_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/linemk/coffee-shop/internal/api"
	"github.com/linemk/coffee-shop/internal/cart"
	"github.com/linemk/coffee-shop/internal/checkout"
	"github.com/linemk/coffee-shop/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrdersAPI struct {
	calls []api.CreateOrderRequest
	err   error
}

func (f *fakeOrdersAPI) CreateOrder(ctx context.Context, req api.CreateOrderRequest, token string) error {
	f.calls = append(f.calls, req)
	return f.err
}

type fakeSession struct {
	authenticated bool
	token         string
	user          *models.User
}

func (f *fakeSession) IsAuthenticated() bool { return f.authenticated }
func (f *fakeSession) Token() string         { return f.token }
func (f *fakeSession) User() *models.User    { return f.user }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadedCart() *cart.Cart {
	c := cart.New()
	c.Add(models.Product{ID: "m1", Name: "Latte", BasePrice: 3.5})
	c.Add(models.Product{ID: "m1", Name: "Latte", BasePrice: 3.5})
	c.Add(models.Product{ID: "m2", Name: "Espresso", BasePrice: 2.0})
	return c
}

func authedSession() *fakeSession {
	return &fakeSession{
		authenticated: true,
		token:         "tok",
		user:          &models.User{ID: "u1", Username: "alice"},
	}
}

func TestPlaceOrder_Unauthenticated(t *testing.T) {
	orders := &fakeOrdersAPI{}
	svc := checkout.NewService(discardLogger(), orders)
	c := loadedCart()

	err := svc.PlaceOrder(context.Background(), &fakeSession{}, c)

	require.ErrorIs(t, err, checkout.ErrLoginRequired)
	assert.Empty(t, orders.calls, "order endpoint must not be called")
	assert.Equal(t, 2, c.Len(), "cart stays intact")
}

func TestPlaceOrder_EmptyCartIsSilentNoop(t *testing.T) {
	orders := &fakeOrdersAPI{}
	svc := checkout.NewService(discardLogger(), orders)

	err := svc.PlaceOrder(context.Background(), authedSession(), cart.New())

	require.NoError(t, err)
	assert.Empty(t, orders.calls, "empty cart performs no network call")
}

func TestPlaceOrder_SubmitsSnapshotAndClearsCart(t *testing.T) {
	orders := &fakeOrdersAPI{}
	svc := checkout.NewService(discardLogger(), orders)
	c := loadedCart()

	require.NoError(t, svc.PlaceOrder(context.Background(), authedSession(), c))

	require.Len(t, orders.calls, 1)
	req := orders.calls[0]
	assert.Equal(t, "u1", req.UserID)
	require.Len(t, req.Items, 2)
	assert.Equal(t, api.OrderItemRequest{MenuID: "m1", Quantity: 2}, req.Items[0])
	assert.Equal(t, api.OrderItemRequest{MenuID: "m2", Quantity: 1}, req.Items[1])

	assert.Equal(t, 0, c.Len(), "successful checkout empties the cart")
}

func TestPlaceOrder_FailureLeavesCartIntact(t *testing.T) {
	orders := &fakeOrdersAPI{err: &api.Error{StatusCode: 500, Message: "out of beans"}}
	svc := checkout.NewService(discardLogger(), orders)
	c := loadedCart()

	err := svc.PlaceOrder(context.Background(), authedSession(), c)
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "out of beans", apiErr.Message)
	assert.Equal(t, 2, c.Len(), "failed checkout keeps the cart for a manual retry")

	// retry is the user repeating the action, nothing automatic
	assert.Len(t, orders.calls, 1)
}
