package search

import (
	"sort"
	"time"

	"github.com/artor/studysearch/pkg/lms"
	"github.com/artor/studysearch/pkg/storage"
)

// sortCourses reorders a merged course list in memory. Unrecognized keys
// leave the order untouched. Lessons are never sorted; their order is
// always content date descending.
func sortCourses(courses []CourseResult, key string) {
	if !storage.KnownSortKey(key) {
		return
	}

	less := courseLess(key)
	sort.SliceStable(courses, func(i, j int) bool {
		return less(courses[i], courses[j])
	})
}

func courseLess(key string) func(a, b CourseResult) bool {
	switch key {
	case storage.SortDateLow, storage.SortOldest:
		return func(a, b CourseResult) bool {
			return itemDate(a).Before(itemDate(b))
		}
	case storage.SortPriceHi:
		return func(a, b CourseResult) bool { return deref(a.Price) > deref(b.Price) }
	case storage.SortPriceLo:
		return func(a, b CourseResult) bool { return deref(a.Price) < deref(b.Price) }
	case storage.SortRating:
		return func(a, b CourseResult) bool { return deref(a.Rating) > deref(b.Rating) }
	case storage.SortPopular:
		return func(a, b CourseResult) bool { return derefInt(a.Students) > derefInt(b.Students) }
	default: // date_high / newest
		return func(a, b CourseResult) bool {
			return itemDate(b).Before(itemDate(a))
		}
	}
}

// itemDate parses the item date; unparseable dates collapse to the zero
// time so they rank as the oldest possible value.
func itemDate(c CourseResult) time.Time {
	return lms.ParseDate(c.Date)
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefInt(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}
