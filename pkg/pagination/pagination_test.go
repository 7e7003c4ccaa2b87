// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequestDefaultsAndClamping(t *testing.T) {
	cases := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, DefaultLimit},
		{"?page=3&limit=50", 3, 50},
		{"?page=0&limit=0", 1, DefaultLimit},
		{"?page=-2&limit=-5", 1, DefaultLimit},
		{"?limit=9999", 1, MaxLimit},
		{"?page=abc&limit=xyz", 1, DefaultLimit},
	}

	for _, tc := range cases {
		request := httptest.NewRequest("GET", "/books"+tc.query, nil)
		params := FromRequest(request)
		assert.Equal(t, tc.wantPage, params.Page, tc.query)
		assert.Equal(t, tc.wantLimit, params.Limit, tc.query)
	}
}

func TestOffset(t *testing.T) {
	assert.Zero(t, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, Params{Page: 3, Limit: 20}.Offset())
}

func TestNewMetaTotalPages(t *testing.T) {
	meta := NewMeta(2, 20, 41)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 41, meta.Total)

	empty := NewMeta(1, 20, 0)
	assert.Zero(t, empty.TotalPages)
}
