// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package tutorial

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookwormhq/bookworm-api/internal/platform/middleware"
	requestutil "github.com/bookwormhq/bookworm-api/internal/platform/request"
	"github.com/bookwormhq/bookworm-api/internal/platform/respond"
	"github.com/bookwormhq/bookworm-api/internal/platform/sec"
	"github.com/bookwormhq/bookworm-api/internal/platform/validate"
	"github.com/bookwormhq/bookworm-api/pkg/pagination"
)

// Handler implements the HTTP layer for tutorials.
type Handler struct {
	service *Service
}

// NewHandler constructs a new tutorial [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the tutorial endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Reading
	router.Get("/", handler.listTutorials)
	router.Get("/{id}", handler.getTutorial)

	// ## Editorial (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/", handler.createTutorial)
		admin.Put("/{id}", handler.updateTutorial)
		admin.Delete("/{id}", handler.deleteTutorial)
	})

	return router
}

type tutorialRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	VideoURL    string `json:"video_url"`
	Category    string `json:"category"`
	Status      Status `json:"status"`
}

/*
GET /api/v1/tutorials.

Description: Public listing of published tutorials. Admins may pass a status
filter to inspect drafts.

Request:
  - category: string (Optional category filter)
  - status: string (Admin only: draft or published)
  - limit: int
  - page: int

Response:
  - 200: []Tutorial: Paginated tutorials, newest first
*/
func (handler *Handler) listTutorials(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	category := request.URL.Query().Get("category")

	var tutorials []*Tutorial
	var total int
	var err error

	if requestutil.IsAdmin(request) {
		filter := Filter{
			Category: category,
			Status:   Status(request.URL.Query().Get("status")),
		}
		tutorials, total, err = handler.service.ListAll(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	} else {
		tutorials, total, err = handler.service.ListPublished(request.Context(), category, paginationParams.Limit, paginationParams.Offset())
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, tutorials, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/tutorials/{id}.

Description: Reading a published tutorial increments its view counter.

Response:
  - 200: Tutorial: Full content
  - 404: ErrNotFound: Unknown tutorial, or a draft for non-admins
*/
func (handler *Handler) getTutorial(writer http.ResponseWriter, request *http.Request) {
	tutorial, err := handler.service.GetPublished(request.Context(),
		requestutil.ID(request, "id"), requestutil.IsAdmin(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tutorial)
}

/*
POST /api/v1/tutorials. Admin only.

Request:
  - Body: tutorialRequest (status defaults to draft)

Response:
  - 201: Tutorial: Created tutorial
*/
func (handler *Handler) createTutorial(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input tutorialRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	created := &Tutorial{
		Title:       input.Title,
		Description: input.Description,
		Content:     input.Content,
		VideoURL:    input.VideoURL,
		Category:    input.Category,
		Status:      input.Status,
		AuthorID:    claims.UserID,
	}

	if err := handler.service.Create(request.Context(), created); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

/*
PUT /api/v1/tutorials/{id}. Admin only.

Response:
  - 200: Tutorial: Updated tutorial
  - 404: ErrNotFound: Unknown tutorial
*/
func (handler *Handler) updateTutorial(writer http.ResponseWriter, request *http.Request) {
	var input tutorialRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	updated := &Tutorial{
		ID:          requestutil.ID(request, "id"),
		Title:       input.Title,
		Description: input.Description,
		Content:     input.Content,
		VideoURL:    input.VideoURL,
		Category:    input.Category,
		Status:      input.Status,
	}

	if err := handler.service.Update(request.Context(), updated); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

/*
DELETE /api/v1/tutorials/{id}. Admin only.

Response:
  - 204: No Content: Tutorial removed
*/
func (handler *Handler) deleteTutorial(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
