package httpx

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tasktrack/tasktrack/internal/domain/model"
	apperrors "github.com/tasktrack/tasktrack/internal/errors"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200

	// dateLayout is the accepted format for the from/to filter parameters.
	dateLayout = "2006-01-02"
)

// pageOpts holds parsed pagination bounds.
type pageOpts struct {
	Page     int
	PageSize int
}

// getPageParams parses page and page_size query parameters with clamping.
func getPageParams(q url.Values) pageOpts {
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(q.Get("page_size"))
	if err != nil || size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return pageOpts{Page: page, PageSize: size}
}

// parseExecutionFilters turns query parameters into repository list options.
// Supported parameters: task, success (true/false), from, to (YYYY-MM-DD),
// q (free-text search), sort (asc/desc).
func parseExecutionFilters(q url.Values, pg pageOpts) (model.ExecutionListOptions, error) {
	opts := model.ExecutionListOptions{
		Limit:  pg.PageSize,
		Offset: (pg.Page - 1) * pg.PageSize,
	}

	if task := strings.TrimSpace(q.Get("task")); task != "" {
		opts.TaskName = &task
	}

	switch strings.ToLower(strings.TrimSpace(q.Get("success"))) {
	case "":
	case "true":
		v := true
		opts.Success = &v
	case "false":
		v := false
		opts.Success = &v
	default:
		return opts, apperrors.ValidationField("success", "must be true or false")
	}

	if from := strings.TrimSpace(q.Get("from")); from != "" {
		ts, err := time.Parse(dateLayout, from)
		if err != nil {
			return opts, apperrors.ValidationField("from", "must be a YYYY-MM-DD date")
		}
		opts.Since = &ts
	}
	if to := strings.TrimSpace(q.Get("to")); to != "" {
		ts, err := time.Parse(dateLayout, to)
		if err != nil {
			return opts, apperrors.ValidationField("to", "must be a YYYY-MM-DD date")
		}
		// Treat the bound as inclusive of the named day.
		end := ts.AddDate(0, 0, 1)
		opts.Until = &end
	}

	if search := strings.TrimSpace(q.Get("q")); search != "" {
		opts.SearchQuery = &search
	}

	if sort := strings.ToLower(strings.TrimSpace(q.Get("sort"))); sort == "asc" || sort == "desc" {
		opts.SortDir = &sort
	}

	return opts, nil
}
