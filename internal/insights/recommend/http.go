// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package recommend

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookwormhq/bookworm-api/internal/platform/middleware"
	requestutil "github.com/bookwormhq/bookworm-api/internal/platform/request"
	"github.com/bookwormhq/bookworm-api/internal/platform/respond"
)

// Handler implements the HTTP layer for recommendations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new recommendation [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the recommendation endpoint.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.recommendations)

	return router
}

/*
GET /api/v1/recommendations.

Response:
  - 200: Result: Suggested books with reasons and a shelf summary
*/
func (handler *Handler) recommendations(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Recommendations(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
