package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linemk/coffee-shop/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, 5*time.Second, discardLogger())
}

func TestClient_UnwrapsResultEnvelope(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/menus", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "public endpoint must not send a token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":[{"id":"m1","name":"Latte","basePrice":3.5,"status":"AVAILABLE","category":{"id":"c1","name":"Coffee"}}]}`))
	})

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "m1", products[0].ID)
	assert.Equal(t, "Latte", products[0].Name)
	assert.Equal(t, 3.5, products[0].BasePrice)
	assert.Equal(t, "c1", products[0].Category.ID)
}

func TestClient_SendsBearerToken(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"result":{"id":"u1","username":"admin","email":"a@a"}}`))
	})

	user, err := client.MyInfo(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
}

func TestClient_ErrorFromNestedEnvelope(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid credentials"}}`))
	})

	_, err := client.Login(context.Background(), api.AuthenticationRequest{Username: "x", Password: "y"})
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid credentials", apiErr.Message)
}

func TestClient_ErrorFromFlatMessage(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"name is required"}`))
	})

	_, err := client.CreateCategory(context.Background(), api.CategoryCreationRequest{}, "tok")
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "name is required", apiErr.Message)
}

func TestClient_ErrorFallsBackToStatusText(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`not json at all`))
	})

	_, err := client.ListCategories(context.Background())
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), apiErr.Message)
}

func TestClient_NoContentIsNotAnError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.DeleteProduct(context.Background(), "m1", "tok")
	assert.NoError(t, err)
}

func TestClient_CreateOrderBody(t *testing.T) {
	var got api.CreateOrderRequest
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"result":{"id":"o1"}}`))
	})

	req := api.CreateOrderRequest{
		UserID: "u1",
		Items: []api.OrderItemRequest{
			{MenuID: "m1", Quantity: 2},
			{MenuID: "m2", Quantity: 1},
		},
	}
	require.NoError(t, client.CreateOrder(context.Background(), req, "tok"))
	assert.Equal(t, req, got)
}
