package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/linemk/coffee-shop/internal/config"
	"github.com/linemk/coffee-shop/internal/devserver"
	"github.com/linemk/coffee-shop/internal/lib/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()

	log := logger.SetupLogger(cfg.Env)
	log.Info("starting devserver", slog.String("env", cfg.Env))

	store := devserver.NewStore()
	if err := store.Seed(cfg.DevServer.AdminPassword); err != nil {
		log.Error("failed to seed store", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to seed store"))
	}

	router := devserver.New(log, store, cfg.DevServer.JWTSecret, cfg.DevServer.TokenTTL)

	srv := &http.Server{
		Addr:         cfg.DevServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.DevServer.Timeout,
		WriteTimeout: cfg.DevServer.Timeout,
		IdleTimeout:  cfg.DevServer.IdleTimeout,
	}

	go func() {
		log.Info("listening", slog.String("address", cfg.DevServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
