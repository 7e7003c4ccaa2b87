package genre

import (
	"context"
	"log/slog"

	"github.com/bookwormhq/bookworm-api/internal/platform/validate"
	"github.com/bookwormhq/bookworm-api/pkg/slug"
	"github.com/bookwormhq/bookworm-api/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListGenres(context context.Context) ([]*Genre, error) {
	return service.repo.List(context)
}

func (service *Service) GetGenre(context context.Context, identifier string) (*Genre, error) {
	if isUUID(identifier) {
		return service.repo.FindByID(context, identifier)
	}
	return service.repo.FindBySlug(context, identifier)
}

func (service *Service) CreateGenre(context context.Context, genre *Genre) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, genre.Name).MaxLen(FieldName, genre.Name, 100)
	if err := validator.Err(); err != nil {
		return err
	}

	if genre.ID == "" {
		genre.ID = uuid.New()
	}
	if genre.Slug == "" {
		genre.Slug = slug.From(genre.Name)
	}

	if err := service.repo.Create(context, genre); err != nil {
		return err
	}

	service.logger.Info("genre_created", slog.String("genre", genre.Slug))
	return nil
}

func (service *Service) UpdateGenre(context context.Context, genre *Genre) error {
	validator := &validate.Validator{}
	if genre.Name != "" {
		validator.MaxLen(FieldName, genre.Name, 100)
	}
	if genre.Slug != "" {
		validator.Slug(FieldSlug, genre.Slug)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	return service.repo.Update(context, genre)
}

func (service *Service) DeleteGenre(context context.Context, id string) error {
	return service.repo.Delete(context, id)
}

// isUUID returns true if the string matches the standard UUID length.
func isUUID(s string) bool {
	return len(s) == 36
}
