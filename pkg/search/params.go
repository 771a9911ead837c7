package search

import (
	"net/url"
	"strconv"
)

// DefaultPerPage matches the endpoints' documented default page size.
const DefaultPerPage = 10

// Params carries the query parameters shared by the courses and search
// endpoints.
type Params struct {
	// Term is the free-text search term ("s" parameter).
	Term string

	// Category is the raw comma-separated category filter. Tokens may be
	// term IDs, slugs or display names, mixed freely.
	Category string

	// PerPage and Page control pagination (1-based page).
	PerPage int
	Page    int

	// Sort is an optional course ordering, see the sort keys in
	// pkg/storage. Unrecognized values are ignored.
	Sort string
}

// ParseParams extracts Params from HTTP query parameters, applying the
// documented defaults for missing or invalid values.
func ParseParams(query url.Values) Params {
	params := Params{
		PerPage: DefaultPerPage,
		Page:    1,
	}

	params.Term = query.Get("s")
	params.Category = query.Get("category")
	params.Sort = query.Get("sort")

	if perPage := query.Get("per_page"); perPage != "" {
		if parsed, err := strconv.Atoi(perPage); err == nil && parsed > 0 {
			params.PerPage = parsed
		}
	}

	if page := query.Get("page"); page != "" {
		if parsed, err := strconv.Atoi(page); err == nil && parsed > 0 {
			params.Page = parsed
		}
	}

	return params
}

// Normalize replaces non-positive pagination values with the defaults.
// ParseParams output is already normalized; callers that build Params
// directly, like the CLI, run it before querying. A negative limit would
// otherwise reach SQLite, where it means no limit at all.
func (p Params) Normalize() Params {
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.Page <= 0 {
		p.Page = 1
	}
	return p
}

// Offset is the item offset of the requested page.
func (p Params) Offset() int {
	return p.PerPage * (p.Page - 1)
}

// pageCount is ceil(total / perPage); zero when nothing matched.
func pageCount(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
