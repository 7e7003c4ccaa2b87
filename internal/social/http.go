// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package social

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookwormhq/bookworm-api/internal/platform/middleware"
	requestutil "github.com/bookwormhq/bookworm-api/internal/platform/request"
	"github.com/bookwormhq/bookworm-api/internal/platform/respond"
	"github.com/bookwormhq/bookworm-api/pkg/convert"
	"github.com/bookwormhq/bookworm-api/pkg/pagination"
)

// Handler implements the HTTP layer for the social graph and feed.
type Handler struct {
	service *Service
}

// NewHandler constructs a new social [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// UserRoutes returns the /users surface: search, profiles, follow graph.
func (handler *Handler) UserRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.searchUsers)
	router.Get("/{id}", handler.getProfile)
	router.Get("/{id}/followers", handler.listFollowers)
	router.Get("/{id}/following", handler.listFollowing)
	router.Post("/{id}/follow", handler.follow)
	router.Delete("/{id}/follow", handler.unfollow)

	return router
}

// FeedRoutes returns the /feed surface.
func (handler *Handler) FeedRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.feed)

	return router
}

/*
GET /api/v1/users.

Request:
  - q: string (Username or display-name substring, required)
  - limit: int
  - page: int

Response:
  - 200: []UserSummary: Paginated matches
*/
func (handler *Handler) searchUsers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	users, total, err := handler.service.SearchUsers(request.Context(),
		request.URL.Query().Get("q"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, users, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/users/{id}.

Response:
  - 200: Profile: Public profile with follower counts
  - 404: ErrNotFound: Unknown or deleted account
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	profile, err := handler.service.GetProfile(request.Context(), viewerID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

/*
GET /api/v1/users/{id}/followers.

Response:
  - 200: []UserSummary: Accounts following this user
*/
func (handler *Handler) listFollowers(writer http.ResponseWriter, request *http.Request) {
	followers, err := handler.service.Followers(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, followers)
}

/*
GET /api/v1/users/{id}/following.

Response:
  - 200: []UserSummary: Accounts this user follows
*/
func (handler *Handler) listFollowing(writer http.ResponseWriter, request *http.Request) {
	following, err := handler.service.Following(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, following)
}

/*
POST /api/v1/users/{id}/follow.

Response:
  - 204: No Content: Edge created (or already present)
  - 400: ErrValidation: Attempted self-follow
*/
func (handler *Handler) follow(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Follow(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
DELETE /api/v1/users/{id}/follow.

Response:
  - 204: No Content: Edge removed if it existed
*/
func (handler *Handler) unfollow(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unfollow(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
GET /api/v1/feed.

Request:
  - limit: int (Default 20, capped at 50)

Response:
  - 200: []Activity: Activities of followed readers, newest first
*/
func (handler *Handler) feed(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	limit := convert.ToInt(request.URL.Query().Get("limit"))

	activities, err := handler.service.Feed(request.Context(), userID, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, activities)
}
