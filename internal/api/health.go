// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package api

import (
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/bookwormhq/bookworm-api/internal/platform/apperr"
	"github.com/bookwormhq/bookworm-api/internal/platform/constants"
	"github.com/bookwormhq/bookworm-api/internal/platform/respond"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db     *pgxpool.Pool
	cache  *redis.Client
	logger *slog.Logger
}

// NewHealthHandler constructs a new [HealthHandler].
func NewHealthHandler(db *pgxpool.Pool, cache *redis.Client, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// Liveness reports that the process is up. It never touches dependencies.
func (handler *HealthHandler) Liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{
		"status":  "ok",
		"service": constants.AppName,
		"version": constants.AppVersion,
	})
}

// Readiness reports whether both backing stores answer.
func (handler *HealthHandler) Readiness(writer http.ResponseWriter, request *http.Request) {
	if err := handler.db.Ping(request.Context()); err != nil {
		handler.logger.Error("readiness_postgres_failed", slog.Any("error", err))
		respond.Error(writer, request, apperr.DataUnavailable(err))
		return
	}

	if err := handler.cache.Ping(request.Context()).Err(); err != nil {
		handler.logger.Error("readiness_redis_failed", slog.Any("error", err))
		respond.Error(writer, request, apperr.DataUnavailable(err))
		return
	}

	respond.OK(writer, map[string]string{"status": "ready"})
}
