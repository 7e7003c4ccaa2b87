// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package tutorial

import (
	"context"
	"log/slog"

	"github.com/bookwormhq/bookworm-api/internal/platform/apperr"
	"github.com/bookwormhq/bookworm-api/internal/platform/validate"
	"github.com/bookwormhq/bookworm-api/pkg/uuid"
)

// Service manages the help-content library.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new tutorial [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListPublished returns the public catalogue, optionally per category.
func (service *Service) ListPublished(context context.Context, category string, limit, offset int) ([]*Tutorial, int, error) {
	return service.repo.List(context, Filter{Status: StatusPublished, Category: category}, limit, offset)
}

// ListAll is the admin listing across every state.
func (service *Service) ListAll(context context.Context, filter Filter, limit, offset int) ([]*Tutorial, int, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, validate.RequiredError(FieldStatus, "Unknown status")
	}
	return service.repo.List(context, filter, limit, offset)
}

// GetPublished returns one public tutorial and counts the view. Drafts stay
// hidden unless the caller is an admin; admin reads do not count views.
func (service *Service) GetPublished(context context.Context, id string, isAdmin bool) (*Tutorial, error) {
	tutorial, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if tutorial.Status != StatusPublished {
		if !isAdmin {
			return nil, apperr.NotFound("Tutorial")
		}
		return tutorial, nil
	}

	if err := service.repo.IncrementViews(context, id); err != nil {
		// A lost view count never blocks the read.
		service.logger.Warn("tutorial_view_count_failed",
			slog.String("tutorial_id", id),
			slog.Any("error", err),
		)
	} else {
		tutorial.Views++
	}
	return tutorial, nil
}

// Create persists a new tutorial, defaulting to draft.
func (service *Service) Create(context context.Context, tutorial *Tutorial) error {
	if tutorial.Status == "" {
		tutorial.Status = StatusDraft
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, tutorial.Title).MaxLen(FieldTitle, tutorial.Title, 200)
	validator.Required(FieldContent, tutorial.Content)
	validator.Required(FieldCategory, tutorial.Category).MaxLen(FieldCategory, tutorial.Category, 100)
	validator.Custom(FieldStatus, !tutorial.Status.IsValid(), "Unknown status")
	if tutorial.VideoURL != "" {
		validator.URL(FieldVideoURL, tutorial.VideoURL)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	tutorial.ID = uuid.New()
	tutorial.Views = 0

	if err := service.repo.Create(context, tutorial); err != nil {
		return err
	}

	service.logger.Info("tutorial_created",
		slog.String("tutorial_id", tutorial.ID),
		slog.String("status", string(tutorial.Status)),
	)
	return nil
}

// Update replaces content and publication state.
func (service *Service) Update(context context.Context, tutorial *Tutorial) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, tutorial.Title).MaxLen(FieldTitle, tutorial.Title, 200)
	validator.Required(FieldContent, tutorial.Content)
	validator.Required(FieldCategory, tutorial.Category).MaxLen(FieldCategory, tutorial.Category, 100)
	validator.Custom(FieldStatus, !tutorial.Status.IsValid(), "Unknown status")
	if tutorial.VideoURL != "" {
		validator.URL(FieldVideoURL, tutorial.VideoURL)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	return service.repo.Update(context, tutorial)
}

// Delete removes a tutorial entirely.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}
	service.logger.Info("tutorial_deleted", slog.String("tutorial_id", id))
	return nil
}
