// Copyright (c) 2026 BookWorm Labs. All rights reserved.

// Command api runs the BookWorm HTTP server.
//
// Startup order: configuration, stores, migrations, token service, domain
// wiring, then the HTTP listener with graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bookwormhq/bookworm-api/internal/api"
	"github.com/bookwormhq/bookworm-api/internal/catalog/book"
	"github.com/bookwormhq/bookworm-api/internal/catalog/genre"
	"github.com/bookwormhq/bookworm-api/internal/goal"
	"github.com/bookwormhq/bookworm-api/internal/insights/recommend"
	"github.com/bookwormhq/bookworm-api/internal/insights/stats"
	"github.com/bookwormhq/bookworm-api/internal/library"
	"github.com/bookwormhq/bookworm-api/internal/platform/config"
	"github.com/bookwormhq/bookworm-api/internal/platform/constants"
	"github.com/bookwormhq/bookworm-api/internal/platform/migration"
	"github.com/bookwormhq/bookworm-api/internal/platform/postgres"
	"github.com/bookwormhq/bookworm-api/internal/platform/redis"
	"github.com/bookwormhq/bookworm-api/internal/platform/sec"
	"github.com/bookwormhq/bookworm-api/internal/review"
	"github.com/bookwormhq/bookworm-api/internal/social"
	"github.com/bookwormhq/bookworm-api/internal/tutorial"
	"github.com/bookwormhq/bookworm-api/internal/users/account"
	"github.com/bookwormhq/bookworm-api/internal/users/auth"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server_exit", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	lifecycle, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Configuration ─────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// ── Backing Stores ────────────────────────────────────────────────────
	pool, err := postgres.NewPool(lifecycle, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	cache, err := redis.NewClient(lifecycle, cfg.RedisURL, logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
		return err
	}

	// ── Identity ──────────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	if err != nil {
		return err
	}

	// ── Domain Wiring ─────────────────────────────────────────────────────
	userRepo := auth.NewUserRepository(pool)
	sessionRepo := auth.NewSessionRepository(pool)
	authService := auth.NewService(userRepo, sessionRepo,
		auth.NewResetTokenRepository(cache), auth.NewVerificationTokenRepository(cache), tokens)

	accountService := account.NewService(
		account.NewAccountRepository(pool), account.NewSessionRepository(pool), logger)

	genreService := genre.NewService(genre.NewPostgresRepository(pool), logger)

	bookRepo := book.NewPostgresRepository(pool)
	bookService := book.NewService(bookRepo, logger)

	socialRepo := social.NewPostgresRepository(pool)
	socialService := social.NewService(socialRepo, socialRepo, socialRepo, logger)

	libraryRepo := library.NewPostgresRepository(pool)
	libraryService := library.NewService(libraryRepo, bookRepo, socialService, logger)

	statsService := stats.NewService(libraryRepo, logger)
	recommendService := recommend.NewService(recommend.NewPostgresRepository(pool), libraryRepo, logger)

	reviewService := review.NewService(review.NewPostgresRepository(pool), bookRepo, socialService, logger)

	goalService := goal.NewService(goal.NewPostgresRepository(pool), libraryRepo, logger)
	tutorialService := tutorial.NewService(tutorial.NewPostgresRepository(pool), logger)

	handlers := api.Handlers{
		Auth:            auth.NewHandler(authService),
		Account:         account.NewHandler(accountService),
		Genres:          genre.NewHandler(genreService),
		Books:           book.NewHandler(bookService),
		Library:         library.NewHandler(libraryService),
		Stats:           stats.NewHandler(statsService),
		Recommendations: recommend.NewHandler(recommendService),
		Reviews:         review.NewHandler(reviewService),
		Social:          social.NewHandler(socialService),
		Goals:           goal.NewHandler(goalService),
		Tutorials:       tutorial.NewHandler(tutorialService),
		Health:          api.NewHealthHandler(pool, cache, logger),
	}

	// ── HTTP Listener ─────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           api.NewRouter(lifecycle, cfg, tokens, logger, handlers),
		ReadTimeout:       constants.DefaultReadTimeout,
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		WriteTimeout:      constants.DefaultWriteTimeout,
		IdleTimeout:       constants.DefaultIdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server_listening",
			slog.String("addr", server.Addr),
			slog.String("environment", cfg.Environment),
		)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-lifecycle.Done():
		logger.Info("server_shutdown_started")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
			return err
		}
		logger.Info("server_shutdown_complete")
	}

	return nil
}
