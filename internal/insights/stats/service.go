// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/bookwormhq/bookworm-api/internal/library"
)

// LibraryReader is the read-only slice of the library the engine consumes.
// The library's [library.Repository] satisfies it.
type LibraryReader interface {
	ListByUser(context context.Context, userID string, shelf library.Shelf) ([]*library.Entry, error)
}

// Service computes reading statistics on demand.
type Service struct {
	libraries LibraryReader
	logger    *slog.Logger
}

// NewService constructs a new statistics [Service].
func NewService(libraries LibraryReader, logger *slog.Logger) *Service {
	return &Service{
		libraries: libraries,
		logger:    logger,
	}
}

// BasicStats returns the profile stat block. A store failure fails the whole
// request; no partial stat block is ever served.
func (service *Service) BasicStats(context context.Context, userID string) (*Basic, error) {
	entries, err := service.libraries.ListByUser(context, userID, "")
	if err != nil {
		return nil, err
	}
	return computeBasic(entries, time.Now()), nil
}

// EnhancedStats returns the dashboard stat block, same all-or-nothing rule.
func (service *Service) EnhancedStats(context context.Context, userID string) (*Enhanced, error) {
	entries, err := service.libraries.ListByUser(context, userID, "")
	if err != nil {
		return nil, err
	}
	return computeEnhanced(entries, time.Now()), nil
}
