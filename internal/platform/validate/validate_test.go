// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwormhq/bookworm-api/internal/platform/apperr"
)

func TestValidatorCollectsMultipleFailures(t *testing.T) {
	v := &Validator{}
	v.Required("title", "")
	v.Range("rating", 9, 1, 5)
	v.Email("email", "not-an-email")

	err := v.Err()
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Len(t, appErr.Details, 3)
}

func TestValidatorPassesCleanInput(t *testing.T) {
	v := &Validator{}
	v.Required("title", "The Left Hand of Darkness")
	v.Range("rating", 5, 1, 5)
	v.Email("email", "reader@example.com")
	v.URL("avatar", "https://cdn.example.com/a.png")
	v.Slug("slug", "science-fiction")
	v.OneOf("shelf", "read", "want_to_read", "currently_reading", "read")

	assert.NoError(t, v.Err())
	assert.False(t, v.HasErrors())
}

func TestURLRule(t *testing.T) {
	cases := map[string]bool{
		"https://example.com/cover.jpg": true,
		"http://example.com":            true,
		"ftp://example.com/file":        false,
		"example.com/no-scheme":         false,
		"https://":                      false,
	}

	for value, valid := range cases {
		v := &Validator{}
		v.URL("field", value)
		if valid {
			assert.NoError(t, v.Err(), value)
		} else {
			assert.Error(t, v.Err(), value)
		}
	}
}

func TestSlugRule(t *testing.T) {
	valid := []string{"fantasy", "science-fiction", "top-10"}
	invalid := []string{"Fantasy", "-leading", "trailing-", "two--hyphens", ""}

	for _, value := range valid {
		v := &Validator{}
		assert.NoError(t, v.Slug("slug", value).Err(), value)
	}
	for _, value := range invalid {
		v := &Validator{}
		assert.Error(t, v.Slug("slug", value).Err(), value)
	}
}

func TestCustomRule(t *testing.T) {
	v := &Validator{}
	v.Custom("shelf", true, "Unknown shelf")

	err := v.Err()
	require.Error(t, err)
	assert.Equal(t, "Unknown shelf", apperr.As(err).Details[0].Message)
}
