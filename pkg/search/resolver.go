// Package search implements the query engine behind the courses and
// combined-search endpoints: category filter resolution, lesson ownership
// resolution, result formatting and the two merge/paginate policies.
package search

import (
	"strconv"
	"strings"

	"github.com/artor/studysearch/pkg/lms"
	"github.com/artor/studysearch/pkg/log"
)

// CategoryLookup is the taxonomy lookup surface the resolver needs.
type CategoryLookup interface {
	CategoryByID(termID int64) (*lms.Category, error)
	CategoryBySlug(slug string) (*lms.Category, error)
	CategoryByName(name string) (*lms.Category, error)
}

// ResolveCategories turns a comma-separated category filter into canonical
// term IDs. Each token is tried as a numeric term ID, then as an exact
// slug, then as a case-insensitive name. Unresolvable tokens are dropped
// and the result is deduplicated; resolution never fails.
//
// An empty result on a non-empty filter means "filter to nothing", which
// callers must distinguish from an empty filter ("no constraint").
func ResolveCategories(lookup CategoryLookup, filter string) []int64 {
	if strings.TrimSpace(filter) == "" {
		return nil
	}

	logger := log.ForService("search")

	var ids []int64
	seen := make(map[int64]bool)
	for _, token := range strings.Split(filter, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		cat := resolveToken(lookup, token, logger)
		if cat == nil {
			logger.Debugf("category token %q did not resolve", token)
			continue
		}
		if !seen[cat.TermID] {
			seen[cat.TermID] = true
			ids = append(ids, cat.TermID)
		}
	}

	return ids
}

func resolveToken(lookup CategoryLookup, token string, logger *log.Logger) *lms.Category {
	if id, err := strconv.ParseInt(token, 10, 64); err == nil {
		cat, err := lookup.CategoryByID(id)
		if err != nil {
			logger.Warnf("category lookup by id %d: %v", id, err)
			return nil
		}
		return cat
	}

	cat, err := lookup.CategoryBySlug(token)
	if err != nil {
		logger.Warnf("category lookup by slug %q: %v", token, err)
		return nil
	}
	if cat != nil {
		return cat
	}

	cat, err = lookup.CategoryByName(token)
	if err != nil {
		logger.Warnf("category lookup by name %q: %v", token, err)
		return nil
	}
	return cat
}
