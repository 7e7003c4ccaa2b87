// Copyright (c) 2026 BookWorm Labs. All rights reserved.

/*
Package book provides the HTTP interface for catalogue discovery and management.

# Routing Strategy

  - Public: Browsing and search endpoints accessible to all visitors.
  - Restricted: Mutative endpoints requiring the admin role.
*/
package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookwormhq/bookworm-api/internal/platform/middleware"
	requestutil "github.com/bookwormhq/bookworm-api/internal/platform/request"
	"github.com/bookwormhq/bookworm-api/internal/platform/respond"
	"github.com/bookwormhq/bookworm-api/internal/platform/sec"
	"github.com/bookwormhq/bookworm-api/internal/platform/validate"
	"github.com/bookwormhq/bookworm-api/pkg/pagination"
	"github.com/bookwormhq/bookworm-api/pkg/query"
)

// Handler implements the HTTP layer for catalogue management and discovery.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalogue [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalogue endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery
	router.Get("/", handler.listBooks)
	router.Get("/{id}", handler.getBook)

	// ## Catalogue Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/", handler.createBook)
		admin.Patch("/{id}", handler.updateBook)
		admin.Delete("/{id}", handler.deleteBook)
	})

	return router
}

// # Request Payloads

// bookRequest defines the inbound JSON schema for create/update operations.
type bookRequest struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	ISBN        string   `json:"isbn"`
	OLID        string   `json:"olid"`
	CoverImage  string   `json:"cover_image"`
	Description string   `json:"description"`
	PublishYear *int     `json:"publish_year"`
	GenreIDs    []string `json:"genre_ids"`
}

/*
GET /api/v1/books.

Description: Retrieves a paginated list of books. Supports case-insensitive
title/author search and a genre filter.

Request:
  - q: string (Title or author substring)
  - genres: string (Comma-separated genre UUIDs, any-match)
  - limit: int
  - page: int

Response:
  - 200: []Book: Paginated catalogue slice
*/
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Query:    queryParams.Get("q"),
		GenreIDs: query.StringSlice(queryParams.Get("genres")),
	}

	books, total, err := handler.service.ListBooks(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/books/{id}.

Response:
  - 200: Book: Full metadata with genres
  - 404: ErrNotFound: Unknown book
*/
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.GetBook(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

/*
POST /api/v1/books. Admin only.

Request:
  - Body: bookRequest

Response:
  - 201: Book: Created catalogue entry
  - 400: ErrInvalidJSON: Validation failure
*/
func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input bookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	created := &Book{
		Title:       input.Title,
		Author:      input.Author,
		ISBN:        input.ISBN,
		OLID:        input.OLID,
		CoverImage:  input.CoverImage,
		Description: input.Description,
		PublishYear: input.PublishYear,
		GenreIDs:    input.GenreIDs,
	}
	if claims := requestutil.Claims(request); claims != nil {
		created.CreatedBy = claims.UserID
	}

	if err := handler.service.CreateBook(request.Context(), created); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
PATCH /api/v1/books/{id}. Admin only.

Description: Partial update. Empty fields keep stored values; supplying
genre_ids replaces the genre associations.

Response:
  - 200: Book: Refreshed entity
  - 404: ErrNotFound: Unknown book
*/
func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	var input bookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	updated := &Book{
		ID:          requestutil.ID(request, "id"),
		Title:       input.Title,
		Author:      input.Author,
		ISBN:        input.ISBN,
		OLID:        input.OLID,
		CoverImage:  input.CoverImage,
		Description: input.Description,
		PublishYear: input.PublishYear,
		GenreIDs:    input.GenreIDs,
	}

	if err := handler.service.UpdateBook(request.Context(), updated); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Return the canonical stored state rather than the sparse patch.
	fresh, err := handler.service.GetBook(request.Context(), updated.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, fresh)
}

/*
DELETE /api/v1/books/{id}. Admin only.

Response:
  - 204: No Content: Book removed
*/
func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteBook(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
