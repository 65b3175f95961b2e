package app

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/linemk/coffee-shop/internal/api"
	"github.com/linemk/coffee-shop/internal/cart"
	"github.com/linemk/coffee-shop/internal/catalog"
	"github.com/linemk/coffee-shop/internal/checkout"
	"github.com/linemk/coffee-shop/internal/config"
	"github.com/linemk/coffee-shop/internal/session"
)

// App bundles everything the CLI commands need: the backend client, the
// session with its persisted token, and the storefront stores.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	API      *api.Client
	Session  *session.Store
	Catalog  *catalog.Store
	Cart     *cart.Cart
	Checkout *checkout.Service
}

// NewApp wires the client stack and restores any persisted session.
func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, log)

	tokens, err := session.NewFileTokenStore(cfg.Session.TokenFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open token store")
	}

	sess := session.NewStore(log, client, tokens)
	if err := sess.Start(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to restore session")
	}

	return &App{
		Config:   cfg,
		Logger:   log,
		API:      client,
		Session:  sess,
		Catalog:  catalog.NewStore(log, client),
		Cart:     cart.New(),
		Checkout: checkout.NewService(log, client),
	}, nil
}

// Close releases the catalog's background fetches.
func (a *App) Close() {
	a.Catalog.Close()
}
