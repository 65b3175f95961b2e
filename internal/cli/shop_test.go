package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linemk/coffee-shop/internal/api"
	"github.com/linemk/coffee-shop/internal/app"
	"github.com/linemk/coffee-shop/internal/cart"
	"github.com/linemk/coffee-shop/internal/catalog"
	"github.com/linemk/coffee-shop/internal/checkout"
	"github.com/linemk/coffee-shop/internal/devserver"
	"github.com/linemk/coffee-shop/internal/session"
)

// newShellEnv wires the package's application global against an
// in-process backend and hands back a shell writing into out.
func newShellEnv(t *testing.T) (*shell, *devserver.Store, *bytes.Buffer) {
	t.Helper()

	store := devserver.NewStore()
	require.NoError(t, store.Seed("admin123"))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(devserver.New(log, store, "cli-secret", time.Hour))
	t.Cleanup(ts.Close)

	client := api.NewClient(ts.URL+"/coffee", 5*time.Second, log)

	tokens, err := session.NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, err)
	sess := session.NewStore(log, client, tokens)
	require.NoError(t, sess.Start(context.Background()))

	cat := catalog.NewStore(log, client)
	t.Cleanup(cat.Close)

	application = &app.App{
		Logger:   log,
		API:      client,
		Session:  sess,
		Catalog:  cat,
		Cart:     cart.New(),
		Checkout: checkout.NewService(log, client),
	}

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	out := &bytes.Buffer{}
	return &shell{cmd: cmd, out: out}, store, out
}

func TestShellCheckout_EmptyCartDoesNotClaimSuccess(t *testing.T) {
	sh, store, out := newShellEnv(t)
	require.NoError(t, application.Session.Login(context.Background(), "admin", "admin123"))

	require.NoError(t, sh.checkout())

	assert.Empty(t, store.Orders())
	assert.Contains(t, out.String(), "Cart is empty")
	assert.NotContains(t, out.String(), "Order placed")
}

func TestShellCheckout_RequiresLogin(t *testing.T) {
	sh, store, out := newShellEnv(t)
	require.NoError(t, application.Catalog.Load(context.Background()))
	application.Cart.Add(application.Catalog.Products()[0])

	require.NoError(t, sh.checkout())

	assert.Empty(t, store.Orders())
	assert.Contains(t, out.String(), "Sign in first")
	assert.Equal(t, 1, application.Cart.Len())
}

func TestShellCheckout_PlacesOrderAndClearsCart(t *testing.T) {
	sh, store, out := newShellEnv(t)
	require.NoError(t, application.Session.Login(context.Background(), "admin", "admin123"))
	require.NoError(t, application.Catalog.Load(context.Background()))
	application.Cart.Add(application.Catalog.Products()[0])

	require.NoError(t, sh.checkout())

	require.Len(t, store.Orders(), 1)
	assert.Contains(t, out.String(), "Order placed")
	assert.Zero(t, application.Cart.Len())
}
