package search

import (
	"errors"
	"strings"
	"testing"

	"github.com/artor/studysearch/pkg/lms"
)

type fakeEnricher struct {
	stats map[int64]*lms.CourseStats
	err   error
}

func (f *fakeEnricher) CourseStats(courseID int64) (*lms.CourseStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stats[courseID], nil
}

func TestCourseItemLinkAndExcerpt(t *testing.T) {
	store := newTestStore(t)
	linker := NewLinker(store, nil)
	formatter := NewFormatter(store, linker, nil, "https://lms.test/", "courses")

	item := formatter.CourseItem(lms.ContentRow{
		ID:       10,
		Type:     lms.ContentCourse,
		Title:    "SQL Fundamentals",
		Body:     "body text",
		Excerpt:  "short excerpt",
		Slug:     "sql-fundamentals",
		Date:     "2024-03-01 10:00:00",
		AuthorID: 7,
	})

	if item.Link != "https://lms.test/courses/sql-fundamentals/" {
		t.Errorf("Unexpected course link: %s", item.Link)
	}
	if item.Excerpt != "short excerpt" {
		t.Errorf("Expected stored excerpt, got %q", item.Excerpt)
	}
	if item.Price != nil || item.Rating != nil || item.Students != nil {
		t.Error("Expected no enrichment fields without an enricher")
	}
}

func TestCourseItemExcerptFallsBackToBody(t *testing.T) {
	store := newTestStore(t)
	formatter := NewFormatter(store, NewLinker(store, nil), nil, "https://lms.test", "courses")

	longBody := strings.Repeat("word ", 30)
	item := formatter.CourseItem(lms.ContentRow{ID: 10, Body: longBody, Slug: "c"})

	words := strings.Fields(strings.TrimSuffix(item.Excerpt, "…"))
	if len(words) != ExcerptWords {
		t.Errorf("Expected %d-word excerpt, got %d: %q", ExcerptWords, len(words), item.Excerpt)
	}
	if !strings.HasSuffix(item.Excerpt, "…") {
		t.Errorf("Expected trimmed excerpt to end with ellipsis: %q", item.Excerpt)
	}
}

func TestCourseItemEnrichment(t *testing.T) {
	store := newTestStore(t)
	enricher := &fakeEnricher{stats: map[int64]*lms.CourseStats{
		10: {Price: 49.99, Rating: 4.5, Students: 1200},
	}}
	formatter := NewFormatter(store, NewLinker(store, nil), enricher, "https://lms.test", "courses")

	item := formatter.CourseItem(lms.ContentRow{ID: 10, Slug: "c"})
	if item.Price == nil || *item.Price != 49.99 {
		t.Errorf("Expected price 49.99, got %v", item.Price)
	}
	if item.Rating == nil || *item.Rating != 4.5 {
		t.Errorf("Expected rating 4.5, got %v", item.Rating)
	}
	if item.Students == nil || *item.Students != 1200 {
		t.Errorf("Expected 1200 students, got %v", item.Students)
	}

	// Unknown course and failing enricher both leave the fields off.
	if got := formatter.CourseItem(lms.ContentRow{ID: 11, Slug: "d"}); got.Price != nil {
		t.Errorf("Expected no price for unknown course, got %v", got.Price)
	}
	failing := NewFormatter(store, NewLinker(store, nil), &fakeEnricher{err: errors.New("down")}, "https://lms.test", "courses")
	if got := failing.CourseItem(lms.ContentRow{ID: 10, Slug: "c"}); got.Price != nil {
		t.Errorf("Expected no price from failing enricher, got %v", got.Price)
	}
}

func TestLessonItemLink(t *testing.T) {
	store := newTestStore(t)
	seedCourse(t, store, 10, "Course", "my-course", "2024-01-01 10:00:00")
	seedLesson(t, store, 100, "Lesson", "my-lesson", "2024-01-02 10:00:00")
	linkLesson(t, store, 100, 10)

	formatter := NewFormatter(store, NewLinker(store, nil), nil, "https://lms.test", "courses")

	item := formatter.LessonItem(lms.ContentRow{ID: 100, Slug: "my-lesson", Type: lms.ContentLesson})
	if item.Link != "https://lms.test/courses/my-course/100/" {
		t.Errorf("Unexpected lesson link: %s", item.Link)
	}
	if item.CourseID == nil || *item.CourseID != 10 {
		t.Errorf("Expected course_id 10, got %v", item.CourseID)
	}
	if len(item.Courses) != 1 || item.Courses[0] != 10 {
		t.Errorf("Expected courses [10], got %v", item.Courses)
	}
}

func TestLessonItemPermalinkFallback(t *testing.T) {
	store := newTestStore(t)
	seedLesson(t, store, 100, "Orphan Lesson", "orphan-lesson", "2024-01-02 10:00:00")

	formatter := NewFormatter(store, NewLinker(store, nil), nil, "https://lms.test", "courses")

	item := formatter.LessonItem(lms.ContentRow{ID: 100, Slug: "orphan-lesson", Type: lms.ContentLesson})
	if item.Link != "https://lms.test/orphan-lesson/" {
		t.Errorf("Expected permalink fallback, got %s", item.Link)
	}
	if item.CourseID != nil {
		t.Errorf("Expected no course_id, got %v", item.CourseID)
	}
}

func TestTrimWords(t *testing.T) {
	if got := TrimWords("one two three", 20); got != "one two three" {
		t.Errorf("Short text should be untouched, got %q", got)
	}
	if got := TrimWords("  spaced   out  ", 20); got != "spaced out" {
		t.Errorf("Expected whitespace normalization, got %q", got)
	}
	if got := TrimWords("a b c d", 2); got != "a b…" {
		t.Errorf("Expected trimmed text with ellipsis, got %q", got)
	}
	if got := TrimWords("", 20); got != "" {
		t.Errorf("Expected empty result, got %q", got)
	}
}

func TestParseParams(t *testing.T) {
	params := ParseParams(map[string][]string{
		"s":        {"sql"},
		"category": {"dev"},
		"per_page": {"25"},
		"page":     {"3"},
		"sort":     {"price_high"},
	})
	if params.Term != "sql" || params.Category != "dev" || params.Sort != "price_high" {
		t.Errorf("Unexpected params: %+v", params)
	}
	if params.PerPage != 25 || params.Page != 3 {
		t.Errorf("Unexpected pagination: %+v", params)
	}
	if params.Offset() != 50 {
		t.Errorf("Expected offset 50, got %d", params.Offset())
	}

	defaults := ParseParams(map[string][]string{
		"per_page": {"bogus"},
		"page":     {"-1"},
	})
	if defaults.PerPage != DefaultPerPage || defaults.Page != 1 {
		t.Errorf("Expected defaults on invalid input, got %+v", defaults)
	}
	if defaults.Offset() != 0 {
		t.Errorf("Expected offset 0, got %d", defaults.Offset())
	}
}

func TestParamsNormalize(t *testing.T) {
	// A negative per-page would mean "no limit" once it reaches SQLite.
	clamped := Params{Term: "sql", PerPage: -3, Page: 0}.Normalize()
	if clamped.PerPage != DefaultPerPage || clamped.Page != 1 {
		t.Errorf("Expected clamped pagination, got %+v", clamped)
	}
	if clamped.Term != "sql" {
		t.Errorf("Expected other fields untouched, got %+v", clamped)
	}

	valid := Params{PerPage: 25, Page: 3}.Normalize()
	if valid.PerPage != 25 || valid.Page != 3 {
		t.Errorf("Expected valid pagination untouched, got %+v", valid)
	}
}
