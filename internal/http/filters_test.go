package httpx

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tasktrack/tasktrack/internal/errors"
)

func TestGetPageParams(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		page     int
		pageSize int
	}{
		{"defaults", "", 1, defaultPageSize},
		{"explicit", "page=3&page_size=25", 3, 25},
		{"zero page clamps", "page=0", 1, defaultPageSize},
		{"negative page clamps", "page=-2", 1, defaultPageSize},
		{"oversized page_size clamps", "page_size=9999", 1, maxPageSize},
		{"garbage ignored", "page=abc&page_size=xyz", 1, defaultPageSize},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			require.NoError(t, err)
			pg := getPageParams(q)
			assert.Equal(t, tc.page, pg.Page)
			assert.Equal(t, tc.pageSize, pg.PageSize)
		})
	}
}

func TestParseExecutionFilters(t *testing.T) {
	q, err := url.ParseQuery("task=prune_sessions&success=true&from=2026-03-01&to=2026-03-14&q=dead&sort=asc")
	require.NoError(t, err)

	opts, err := parseExecutionFilters(q, pageOpts{Page: 2, PageSize: 20})
	require.NoError(t, err)

	require.NotNil(t, opts.TaskName)
	assert.Equal(t, "prune_sessions", *opts.TaskName)
	require.NotNil(t, opts.Success)
	assert.True(t, *opts.Success)
	require.NotNil(t, opts.Since)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *opts.Since)
	// the "to" day itself is included
	require.NotNil(t, opts.Until)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *opts.Until)
	require.NotNil(t, opts.SearchQuery)
	assert.Equal(t, "dead", *opts.SearchQuery)
	require.NotNil(t, opts.SortDir)
	assert.Equal(t, "asc", *opts.SortDir)
	assert.Equal(t, 20, opts.Limit)
	assert.Equal(t, 20, opts.Offset)
}

func TestParseExecutionFiltersEmpty(t *testing.T) {
	opts, err := parseExecutionFilters(url.Values{}, pageOpts{Page: 1, PageSize: 50})
	require.NoError(t, err)
	assert.Nil(t, opts.TaskName)
	assert.Nil(t, opts.Success)
	assert.Nil(t, opts.Since)
	assert.Nil(t, opts.Until)
	assert.Nil(t, opts.SearchQuery)
	assert.Nil(t, opts.SortDir)
}

func TestParseExecutionFiltersInvalid(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bad success", "success=maybe"},
		{"bad from", "from=03/01/2026"},
		{"bad to", "to=tomorrow"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			require.NoError(t, err)
			_, err = parseExecutionFilters(q, pageOpts{Page: 1, PageSize: 50})
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestParseExecutionFiltersIgnoresUnknownSort(t *testing.T) {
	q, err := url.ParseQuery("sort=sideways")
	require.NoError(t, err)
	opts, err := parseExecutionFilters(q, pageOpts{Page: 1, PageSize: 50})
	require.NoError(t, err)
	assert.Nil(t, opts.SortDir)
}
