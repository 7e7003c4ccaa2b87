// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookwormhq/bookworm-api/internal/platform/middleware"
	requestutil "github.com/bookwormhq/bookworm-api/internal/platform/request"
	"github.com/bookwormhq/bookworm-api/internal/platform/respond"
	"github.com/bookwormhq/bookworm-api/internal/platform/validate"
)

// Handler implements the HTTP layer for the authenticated user's library.
type Handler struct {
	service *Service
}

// NewHandler constructs a new library [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the library endpoints. Every route
// operates on the authenticated user's own shelves.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listEntries)
	router.Post("/", handler.addOrMove)
	router.Get("/{bookID}", handler.getEntry)
	router.Patch("/{bookID}/progress", handler.updateProgress)
	router.Patch("/{bookID}/rating", handler.setRating)
	router.Delete("/{bookID}", handler.removeEntry)

	return router
}

// # Request Payloads

type shelfRequest struct {
	BookID     string `json:"book_id"`
	Shelf      Shelf  `json:"shelf"`
	TotalPages int    `json:"total_pages"`
}

type progressRequest struct {
	PagesRead  int `json:"pages_read"`
	TotalPages int `json:"total_pages"`
}

type ratingRequest struct {
	Rating int `json:"rating"`
}

/*
GET /api/v1/library.

Request:
  - shelf: string (Optional filter: want_to_read, currently_reading, read)

Response:
  - 200: []Entry: Entries newest-added first with books populated
*/
func (handler *Handler) listEntries(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.service.ListEntries(request.Context(), userID, Shelf(request.URL.Query().Get("shelf")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

/*
POST /api/v1/library.

Description: Adds a book to a shelf, or moves an existing entry. Re-submitting
the current shelf is accepted without change.

Request:
  - Body: shelfRequest

Response:
  - 200: Entry: Created or moved entry
  - 404: ErrNotFound: Unknown book
*/
func (handler *Handler) addOrMove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input shelfRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	entry, err := handler.service.AddOrMove(request.Context(), userID, input.BookID, input.Shelf, input.TotalPages)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}

/*
GET /api/v1/library/{bookID}.

Response:
  - 200: Entry: The user's entry for this book
  - 404: ErrNotFound: Book not in library
*/
func (handler *Handler) getEntry(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.GetEntry(request.Context(), userID, requestutil.ID(request, "bookID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}

/*
PATCH /api/v1/library/{bookID}/progress.

Description: Records the current page. Hitting 100% finishes the book and
moves it to the read shelf.

Request:
  - Body: progressRequest

Response:
  - 200: Entry: Entry with recomputed percentage
*/
func (handler *Handler) updateProgress(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input progressRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	entry, err := handler.service.UpdateProgress(request.Context(), userID, requestutil.ID(request, "bookID"), input.PagesRead, input.TotalPages)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}

/*
PATCH /api/v1/library/{bookID}/rating.

Request:
  - Body: ratingRequest (1-5)

Response:
  - 200: Entry: Entry with the personal rating applied
*/
func (handler *Handler) setRating(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ratingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	entry, err := handler.service.SetPersonalRating(request.Context(), userID, requestutil.ID(request, "bookID"), input.Rating)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}

/*
DELETE /api/v1/library/{bookID}.

Response:
  - 204: No Content: Entry removed
*/
func (handler *Handler) removeEntry(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Remove(request.Context(), userID, requestutil.ID(request, "bookID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
