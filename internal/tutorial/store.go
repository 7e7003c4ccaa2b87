// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package tutorial

import "context"

// Repository defines the data access contract for tutorials.
type Repository interface {
	// List returns tutorials newest first under the filter.
	List(context context.Context, filter Filter, limit, offset int) ([]*Tutorial, int, error)

	// FindByID resolves one tutorial.
	FindByID(context context.Context, id string) (*Tutorial, error)

	// Create persists a new tutorial.
	Create(context context.Context, tutorial *Tutorial) error

	// Update persists content and status changes.
	Update(context context.Context, tutorial *Tutorial) error

	// Delete removes a tutorial.
	Delete(context context.Context, id string) error

	// IncrementViews bumps the view counter without touching updatedat.
	IncrementViews(context context.Context, id string) error
}
