package devserver_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linemk/coffee-shop/internal/admin"
	"github.com/linemk/coffee-shop/internal/api"
	"github.com/linemk/coffee-shop/internal/cart"
	"github.com/linemk/coffee-shop/internal/catalog"
	"github.com/linemk/coffee-shop/internal/checkout"
	"github.com/linemk/coffee-shop/internal/devserver"
	"github.com/linemk/coffee-shop/internal/session"
)

// env wires the real client stack against a devserver instance, the same
// way cmd/coffeeshop does.
type env struct {
	client    *api.Client
	session   *session.Store
	catalog   *catalog.Store
	cart      *cart.Cart
	tokenFile string
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := devserver.NewStore()
	require.NoError(t, store.Seed("admin123"))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(devserver.New(log, store, "e2e-secret", time.Hour))
	t.Cleanup(ts.Close)

	client := api.NewClient(ts.URL+"/coffee", 5*time.Second, log)

	tokenFile := filepath.Join(t.TempDir(), "token")
	tokens, err := session.NewFileTokenStore(tokenFile)
	require.NoError(t, err)

	sess := session.NewStore(log, client, tokens)
	require.NoError(t, sess.Start(context.Background()))

	cat := catalog.NewStore(log, client)
	t.Cleanup(cat.Close)

	return &env{
		client:    client,
		session:   sess,
		catalog:   cat,
		cart:      cart.New(),
		tokenFile: tokenFile,
	}
}

func TestStorefrontFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.catalog.Load(ctx))
	require.Len(t, e.catalog.Products(), 4)
	require.Len(t, e.catalog.Categories(), 2)

	for _, c := range e.catalog.Categories() {
		if c.Name == "Tea" {
			e.catalog.SelectCategory(c.ID)
		}
	}
	teas := e.catalog.Filtered()
	require.Len(t, teas, 1)
	assert.Equal(t, "Green Tea", teas[0].Name)

	e.cart.Add(teas[0])
	e.cart.Add(teas[0])
	require.Equal(t, 2, e.cart.ItemCount())

	svc := checkout.NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), e.client)

	t.Run("checkout requires login", func(t *testing.T) {
		err := svc.PlaceOrder(ctx, e.session, e.cart)
		require.ErrorIs(t, err, checkout.ErrLoginRequired)
		assert.Equal(t, 2, e.cart.ItemCount())
	})

	require.NoError(t, e.session.Login(ctx, "admin", "admin123"))
	require.True(t, e.session.IsAuthenticated())

	t.Run("checkout clears cart on success", func(t *testing.T) {
		require.NoError(t, svc.PlaceOrder(ctx, e.session, e.cart))
		assert.Zero(t, e.cart.Len())
	})
}

func TestSessionPersistsAcrossRestarts(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.session.Login(ctx, "admin", "admin123"))
	token := e.session.Token()
	require.NotEmpty(t, token)
	require.True(t, e.session.IsAdmin())

	// a second store over the same token file picks the session back up
	tokens, err := session.NewFileTokenStore(e.tokenFile)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	revived := session.NewStore(log, e.client, tokens)
	require.NoError(t, revived.Start(ctx))
	require.True(t, revived.IsAuthenticated())
	assert.Equal(t, "admin", revived.User().Username)
}

func TestRegistrationFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.session.Register(ctx, session.RegisterForm{
		Username:        "carol",
		Email:           "carol@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)

	// registration does not log in
	require.False(t, e.session.IsAuthenticated())

	require.NoError(t, e.session.Login(ctx, "carol", "secret123"))
	require.True(t, e.session.IsAuthenticated())
	assert.False(t, e.session.IsAdmin())
}

func TestAdminFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.session.Login(ctx, "admin", "admin123"))
	require.True(t, e.session.IsAdmin())

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("category create shows up in list", func(t *testing.T) {
		mgr := admin.NewCategoryManager(log, e.client, e.session)
		require.NoError(t, mgr.Refresh(ctx))
		before := len(mgr.Categories())

		require.NoError(t, mgr.OpenCreate())
		require.NoError(t, mgr.Save(ctx, nil, admin.CategoryForm{Name: "Pastries"}))
		require.Len(t, mgr.Categories(), before+1)
		assert.Equal(t, admin.ModalNone, mgr.Modal())
	})

	t.Run("product edit round-trips", func(t *testing.T) {
		mgr := admin.NewProductManager(log, e.client, e.session)
		require.NoError(t, mgr.Refresh(ctx))
		require.NotEmpty(t, mgr.Products())

		target := mgr.Products()[0]
		require.NoError(t, mgr.OpenEdit(target.ID))
		form := admin.FormFromProduct(*mgr.Editing())
		form.BasePrice = 4.25
		require.NoError(t, mgr.Save(ctx, mgr.Editing(), form))

		for _, p := range mgr.Products() {
			if p.ID == target.ID {
				assert.Equal(t, 4.25, p.BasePrice)
			}
		}
	})

	t.Run("declined delete keeps the product", func(t *testing.T) {
		mgr := admin.NewProductManager(log, e.client, e.session)
		require.NoError(t, mgr.Refresh(ctx))
		before := len(mgr.Products())

		require.NoError(t, mgr.Delete(ctx, mgr.Products()[0].ID, func() bool { return false }))
		require.Len(t, mgr.Products(), before)

		require.NoError(t, mgr.Delete(ctx, mgr.Products()[0].ID, func() bool { return true }))
		require.Len(t, mgr.Products(), before-1)
	})

	t.Run("regular user cannot mutate", func(t *testing.T) {
		_, err := e.session.Register(ctx, session.RegisterForm{
			Username:        "dave",
			Email:           "dave@example.com",
			Password:        "secret123",
			ConfirmPassword: "secret123",
		})
		require.NoError(t, err)
		require.NoError(t, e.session.Login(ctx, "dave", "secret123"))

		mgr := admin.NewCategoryManager(log, e.client, e.session)
		require.NoError(t, mgr.Refresh(ctx))
		err = mgr.Save(ctx, nil, admin.CategoryForm{Name: "Nope"})
		require.Error(t, err)

		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 403, apiErr.StatusCode)
	})
}
