// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package goal

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookwormhq/bookworm-api/internal/platform/middleware"
	requestutil "github.com/bookwormhq/bookworm-api/internal/platform/request"
	"github.com/bookwormhq/bookworm-api/internal/platform/respond"
	"github.com/bookwormhq/bookworm-api/internal/platform/validate"
	"github.com/bookwormhq/bookworm-api/pkg/convert"
)

// Handler implements the HTTP layer for reading goals.
type Handler struct {
	service *Service
}

// NewHandler constructs a new goal [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the goal endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.getGoal)
	router.Put("/", handler.setGoal)

	return router
}

type goalRequest struct {
	Year        int `json:"year"`
	TargetBooks int `json:"target_books"`
}

/*
GET /api/v1/goals.

Request:
  - year: int (Defaults to the current year)

Response:
  - 200: Goal: Target with derived progress
  - 404: ErrNotFound: No goal set for the year
*/
func (handler *Handler) getGoal(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var goal *Goal
	if year := convert.ToInt(request.URL.Query().Get("year")); year > 0 {
		goal, err = handler.service.GoalForYear(request.Context(), userID, year)
	} else {
		goal, err = handler.service.CurrentGoal(request.Context(), userID)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, goal)
}

/*
PUT /api/v1/goals.

Description: Creates or replaces the target for a year. One goal per year.

Request:
  - Body: goalRequest (year defaults to the current year)

Response:
  - 200: Goal: Stored target with progress
  - 400: ErrValidation: Target below one book
*/
func (handler *Handler) setGoal(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input goalRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	goal, err := handler.service.SetGoal(request.Context(), userID, input.Year, input.TargetBooks)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, goal)
}
