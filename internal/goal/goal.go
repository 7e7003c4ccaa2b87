// Copyright (c) 2026 BookWorm Labs. All rights reserved.

// Package goal implements yearly reading goals.
//
// One goal per reader per calendar year. Progress is derived from the
// library at read time: books finished within the goal year count toward
// the target.
package goal

import (
	"context"
	"time"

	"github.com/bookwormhq/bookworm-api/internal/library"
)

// Goal is a yearly book-count target.
type Goal struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Year        int    `json:"year"`
	TargetBooks int    `json:"target_books"`

	// Derived at read time, never stored.
	CurrentBooks int `json:"current_books"`
	Percentage   int `json:"percentage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository defines the data access contract for goals.
type Repository interface {
	// FindByUserAndYear resolves the unique goal for (user, year).
	FindByUserAndYear(context context.Context, userID string, year int) (*Goal, error)

	// Upsert creates or replaces the goal for (user, year).
	Upsert(context context.Context, goal *Goal) error
}

// LibraryReader is the read-only library slice used for progress.
type LibraryReader interface {
	ListByUser(context context.Context, userID string, shelf library.Shelf) ([]*library.Entry, error)
}

const FieldTargetBooks = "target_books"
