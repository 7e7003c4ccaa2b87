// Copyright (c) 2026 BookWorm Labs. All rights reserved.

/*
Package api assembles the HTTP surface of the BookWorm server.

It owns the middleware chain and the /api/v1 route table; every domain
package contributes its own sub-router.
*/
package api

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/bookwormhq/bookworm-api/internal/catalog/book"
	"github.com/bookwormhq/bookworm-api/internal/catalog/genre"
	"github.com/bookwormhq/bookworm-api/internal/goal"
	"github.com/bookwormhq/bookworm-api/internal/insights/recommend"
	"github.com/bookwormhq/bookworm-api/internal/insights/stats"
	"github.com/bookwormhq/bookworm-api/internal/library"
	"github.com/bookwormhq/bookworm-api/internal/platform/config"
	"github.com/bookwormhq/bookworm-api/internal/platform/middleware"
	"github.com/bookwormhq/bookworm-api/internal/review"
	"github.com/bookwormhq/bookworm-api/internal/social"
	"github.com/bookwormhq/bookworm-api/internal/tutorial"
	"github.com/bookwormhq/bookworm-api/internal/users/account"
	"github.com/bookwormhq/bookworm-api/internal/users/auth"
)

// Handlers collects every domain handler the router mounts.
type Handlers struct {
	Auth            *auth.Handler
	Account         *account.Handler
	Genres          *genre.Handler
	Books           *book.Handler
	Library         *library.Handler
	Stats           *stats.Handler
	Recommendations *recommend.Handler
	Reviews         *review.Handler
	Social          *social.Handler
	Goals           *goal.Handler
	Tutorials       *tutorial.Handler
	Health          *HealthHandler
}

// NewRouter builds the full server router: middleware chain, health probes,
// and the versioned API.
func NewRouter(lifecycle context.Context, cfg *config.Config, verifier middleware.TokenVerifier, logger *slog.Logger, handlers Handlers) chi.Router {
	router := chi.NewRouter()

	// ## Cross-Cutting Chain
	//
	// Order matters: tracing first so every later stage logs with a request
	// ID, recovery before the domain handlers, authentication last so claims
	// are in place when routing begins.
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.PanicRecovery(logger))
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimit(lifecycle))
	router.Use(middleware.Authenticate(verifier))

	// ## Probes
	router.Get("/healthz", handlers.Health.Liveness)
	router.Get("/readyz", handlers.Health.Readiness)

	// ## Versioned API
	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Mount("/auth", handlers.Auth.Routes())
		v1.Mount("/me", handlers.Account.Routes())
		v1.Mount("/genres", handlers.Genres.Routes())
		v1.Mount("/books", handlers.Books.Routes())
		v1.Mount("/library", handlers.Library.Routes())
		v1.Mount("/stats", handlers.Stats.Routes())
		v1.Mount("/recommendations", handlers.Recommendations.Routes())
		v1.Mount("/reviews", handlers.Reviews.Routes())
		v1.Mount("/users", handlers.Social.UserRoutes())
		v1.Mount("/feed", handlers.Social.FeedRoutes())
		v1.Mount("/goals", handlers.Goals.Routes())
		v1.Mount("/tutorials", handlers.Tutorials.Routes())
	})

	return router
}
