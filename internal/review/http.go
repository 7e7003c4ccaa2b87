// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package review

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

// Handler implements the HTTP layer for reviews and moderation.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the review endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Reading
	router.Get("/book/{bookID}", handler.listBookReviews)

	// ## Authoring
	router.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)
		member.Post("/", handler.createReview)
		member.Get("/mine", handler.listOwnReviews)
		member.Patch("/{id}", handler.updateReview)
		member.Delete("/{id}", handler.deleteReview)
	})

	// ## Moderation
	router.Group(func(moderation chi.Router) {
		moderation.Use(middleware.RequireRole(sec.RoleModerator))
		moderation.Get("/queue", handler.listQueue)
		moderation.Post("/{id}/moderate", handler.moderateReview)
	})

	return router
}

// # Request Payloads

type reviewRequest struct {
	BookID  string `json:"book_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type moderationRequest struct {
	Status Status `json:"status"`
}

/*
GET /api/v1/reviews/book/{bookID}.

Description: Public, approved reviews only, newest first.

Response:
  - 200: []Review: Paginated reviews with reviewer names
*/
func (handler *Handler) listBookReviews(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	reviews, total, err := handler.service.ListBookReviews(request.Context(),
		requestutil.ID(request, "bookID"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/reviews.

Request:
  - Body: reviewRequest

Response:
  - 201: Review: Pending review awaiting moderation
  - 409: ErrConflict: This user already reviewed the book
*/
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	review, err := handler.service.CreateReview(request.Context(), userID, input.BookID, input.Rating, input.Comment)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, review)
}

/*
GET /api/v1/reviews/mine.

Response:
  - 200: []Review: The caller's reviews in every moderation state
*/
func (handler *Handler) listOwnReviews(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviews, err := handler.service.ListUserReviews(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, reviews)
}

/*
PATCH /api/v1/reviews/{id}.

Description: Author-only revision. The review returns to the pending queue.

Response:
  - 200: Review: Revised review
  - 403: ErrForbidden: Caller is not the author
*/
func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	review, err := handler.service.UpdateReview(request.Context(), userID, requestutil.ID(request, "id"), input.Rating, input.Comment)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, review)
}

/*
DELETE /api/v1/reviews/{id}.

Response:
  - 204: No Content: Review removed
  - 403: ErrForbidden: Caller is neither author nor admin
*/
func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.DeleteReview(request.Context(), userID, requestutil.IsAdmin(request), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
GET /api/v1/reviews/queue. Moderator only.

Request:
  - status: string (Optional filter: pending, approved, rejected)

Response:
  - 200: []Review: Paginated moderation queue
*/
func (handler *Handler) listQueue(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	status := Status(request.URL.Query().Get("status"))

	reviews, total, err := handler.service.ListQueue(request.Context(), status, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/reviews/{id}/moderate. Moderator only.

Request:
  - Body: moderationRequest (approved or rejected)

Response:
  - 200: Review: Review with the decision applied
*/
func (handler *Handler) moderateReview(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input moderationRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	review, err := handler.service.Moderate(request.Context(), claims.UserID, requestutil.ID(request, "id"), input.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, review)
}
