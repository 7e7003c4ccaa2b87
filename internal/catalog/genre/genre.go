// Package genre manages the catalogue's genre taxonomy.
//
// Genres classify books (Fantasy, Science Fiction, ...) and feed the library
// statistics and recommendation engines. Names are unique; slugs are derived.
package genre

import "time"

// Genre is a single classification label in the catalogue.
type Genre struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Field identifiers for validation.
const (
	FieldName        = "name"
	FieldSlug        = "slug"
	FieldDescription = "description"
)
