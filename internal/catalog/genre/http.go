package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookwormhq/bookworm-api/internal/platform/middleware"
	requestutil "github.com/bookwormhq/bookworm-api/internal/platform/request"
	"github.com/bookwormhq/bookworm-api/internal/platform/respond"
	"github.com/bookwormhq/bookworm-api/internal/platform/sec"
	"github.com/bookwormhq/bookworm-api/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listGenres)
	router.Get("/{identifier}", handler.getGenre)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/", handler.createGenre)
		admin.Patch("/{id}", handler.updateGenre)
		admin.Delete("/{id}", handler.deleteGenre)
	})

	return router
}

type genreRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.ListGenres(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genres)
}

func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	found, err := handler.service.GetGenre(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input genreRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	created := &Genre{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
	}
	if claims := requestutil.Claims(request); claims != nil {
		created.CreatedBy = claims.UserID
	}

	if err := handler.service.CreateGenre(request.Context(), created); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

func (handler *Handler) updateGenre(writer http.ResponseWriter, request *http.Request) {
	var input genreRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	updated := &Genre{
		ID:          requestutil.ID(request, "id"),
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
	}

	if err := handler.service.UpdateGenre(request.Context(), updated); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteGenre(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
