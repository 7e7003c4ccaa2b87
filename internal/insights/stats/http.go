// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookwormhq/bookworm-api/internal/platform/middleware"
	requestutil "github.com/bookwormhq/bookworm-api/internal/platform/request"
	"github.com/bookwormhq/bookworm-api/internal/platform/respond"
)

// Handler implements the HTTP layer for reading statistics.
type Handler struct {
	service *Service
}

// NewHandler constructs a new statistics [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the statistics endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.basicStats)
	router.Get("/enhanced", handler.enhancedStats)

	return router
}

/*
GET /api/v1/stats.

Response:
  - 200: Basic: Shelf counts, completions, pages, average rating
  - 503: ErrDataUnavailable: Library store unreachable
*/
func (handler *Handler) basicStats(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	basic, err := handler.service.BasicStats(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, basic)
}

/*
GET /api/v1/stats/enhanced.

Response:
  - 200: Enhanced: Monthly history, genre chart, streak
  - 503: ErrDataUnavailable: Library store unreachable
*/
func (handler *Handler) enhancedStats(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	enhanced, err := handler.service.EnhancedStats(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, enhanced)
}
