package storage

import (
	"testing"

	"github.com/artor/studysearch/pkg/lms"
)

func TestSearchCoursesTermMatching(t *testing.T) {
	store := newTestStore(t)

	mustInsertContent(t, store, course(1, "Marketing Fundamentals", "2024-01-10 09:00:00"))
	mustInsertContent(t, store, course(2, "Advanced Cooking", "2024-02-10 09:00:00"))
	mustInsertContent(t, store, lms.ContentRow{
		ID: 3, Type: lms.ContentCourse, Title: "Sales",
		Body: "includes a MARKETING module", Slug: "sales", Date: "2024-03-10 09:00:00",
	})

	rows, total, err := store.SearchCourses(CourseSearchOpts{Term: "marketing", Limit: 10})
	if err != nil {
		t.Fatalf("SearchCourses: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	// Default order is date descending.
	if rows[0].ID != 3 || rows[1].ID != 1 {
		t.Errorf("order = [%d %d], want [3 1]", rows[0].ID, rows[1].ID)
	}
}

func TestSearchCoursesExcludesUnpublished(t *testing.T) {
	store := newTestStore(t)

	mustInsertContent(t, store, course(1, "Go Basics", "2024-01-10 09:00:00"))
	if err := store.InsertContent(course(2, "Go Drafts", "2024-01-11 09:00:00"), lms.StatusDraft); err != nil {
		t.Fatal(err)
	}

	_, total, err := store.SearchCourses(CourseSearchOpts{Term: "go", Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1 (draft excluded)", total)
	}
}

func TestSearchCoursesCategoryAndTermConjunctive(t *testing.T) {
	store := newTestStore(t)

	if err := store.InsertCategory(lms.Category{TermID: 168, Slug: "vietnam", Name: "Vietnam"}); err != nil {
		t.Fatal(err)
	}
	mustInsertContent(t, store, course(1, "Vietnam Marketing", "2024-01-10 09:00:00"))
	mustInsertContent(t, store, course(2, "Vietnam Cooking", "2024-01-11 09:00:00"))
	mustInsertContent(t, store, course(3, "Global Marketing", "2024-01-12 09:00:00"))
	for _, id := range []int64{1, 2} {
		if err := store.AssignCategory(id, 168); err != nil {
			t.Fatal(err)
		}
	}

	rows, total, err := store.SearchCourses(CourseSearchOpts{
		Term: "marketing", CategoryIDs: []int64{168}, Limit: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(rows) != 1 || rows[0].ID != 1 {
		t.Errorf("got total=%d rows=%v, want only course 1", total, rows)
	}
}

func TestSearchCoursesTotalIndependentOfWindow(t *testing.T) {
	store := newTestStore(t)

	for i := int64(1); i <= 7; i++ {
		mustInsertContent(t, store, course(i, "Go Course", "2024-01-10 09:00:00"))
	}

	rows, total, err := store.SearchCourses(CourseSearchOpts{Term: "go", Limit: 3, Offset: 3})
	if err != nil {
		t.Fatal(err)
	}
	if total != 7 {
		t.Errorf("total = %d, want 7", total)
	}
	if len(rows) != 3 {
		t.Errorf("rows = %d, want 3", len(rows))
	}

	// Last page holds the remainder.
	rows, _, err = store.SearchCourses(CourseSearchOpts{Term: "go", Limit: 3, Offset: 6})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("last page rows = %d, want 1", len(rows))
	}
}

func TestSearchCoursesLikeWildcardsEscaped(t *testing.T) {
	store := newTestStore(t)

	mustInsertContent(t, store, course(1, "100% Guaranteed", "2024-01-10 09:00:00"))
	mustInsertContent(t, store, course(2, "Fully Guaranteed", "2024-01-11 09:00:00"))

	_, total, err := store.SearchCourses(CourseSearchOpts{Term: "100%", Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1 (%% must not act as a wildcard)", total)
	}
}

func TestSearchCoursesSortByPrice(t *testing.T) {
	store := newTestStore(t)

	mustInsertContent(t, store, course(1, "Alpha", "2024-01-10 09:00:00"))
	mustInsertContent(t, store, course(2, "Beta", "2024-01-11 09:00:00"))
	mustInsertContent(t, store, course(3, "Gamma", "2024-01-12 09:00:00"))
	for id, price := range map[int64]float64{1: 30, 2: 10, 3: 20} {
		if err := store.SetCourseStats(id, lms.CourseStats{Price: price}); err != nil {
			t.Fatal(err)
		}
	}

	rows, _, err := store.SearchCourses(CourseSearchOpts{Sort: SortPriceHi, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	got := []int64{rows[0].ID, rows[1].ID, rows[2].ID}
	if got[0] != 1 || got[1] != 3 || got[2] != 2 {
		t.Errorf("price_high order = %v, want [1 3 2]", got)
	}
}

func TestSearchLessonsCategoryTraversesCurriculum(t *testing.T) {
	store := newTestStore(t)

	if err := store.InsertCategory(lms.Category{TermID: 7, Slug: "thailand", Name: "Thailand"}); err != nil {
		t.Fatal(err)
	}
	mustInsertContent(t, store, course(1, "Thai Cooking", "2024-01-10 09:00:00"))
	if err := store.AssignCategory(1, 7); err != nil {
		t.Fatal(err)
	}
	mustInsertContent(t, store, lesson(10, "Pad Thai Basics", "2024-01-11 09:00:00"))
	mustInsertContent(t, store, lesson(11, "Basics of Knives", "2024-01-12 09:00:00"))
	linkLessonToCourse(t, store, 10, 1)
	// Lesson 11 belongs to no curriculum.

	rows, total, err := store.SearchLessons("basics", []int64{7}, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(rows) != 1 || rows[0].ID != 10 {
		t.Errorf("got total=%d rows=%v, want only lesson 10", total, rows)
	}
}

func TestSearchLessonsCategoryWithoutCurriculumTables(t *testing.T) {
	store := newTestStore(t)

	mustInsertContent(t, store, lesson(10, "Orphan Lesson", "2024-01-11 09:00:00"))
	for _, table := range []string{"curriculum_materials", "curriculum_sections"} {
		if _, err := store.db.Exec("DROP TABLE " + table); err != nil {
			t.Fatal(err)
		}
	}

	rows, total, err := store.SearchLessons("orphan", []int64{7}, 10, 0)
	if err != nil {
		t.Fatalf("expected graceful degradation, got error: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Errorf("got total=%d rows=%v, want empty result", total, rows)
	}

	// Without a category filter the same search still works.
	rows, total, err = store.SearchLessons("orphan", nil, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(rows) != 1 {
		t.Errorf("unfiltered search: total=%d rows=%d, want 1", total, len(rows))
	}
}

func TestLessonsByCategory(t *testing.T) {
	store := newTestStore(t)

	if err := store.InsertCategory(lms.Category{TermID: 7, Slug: "thailand", Name: "Thailand"}); err != nil {
		t.Fatal(err)
	}
	mustInsertContent(t, store, course(1, "Thai Cooking", "2024-01-10 09:00:00"))
	if err := store.AssignCategory(1, 7); err != nil {
		t.Fatal(err)
	}
	mustInsertContent(t, store, lesson(10, "Street Food", "2024-01-11 09:00:00"))
	mustInsertContent(t, store, lesson(11, "Curry Pastes", "2024-01-12 09:00:00"))
	linkLessonToCourse(t, store, 10, 1)
	linkLessonToCourse(t, store, 11, 1)

	rows, total, err := store.LessonsByCategory([]int64{7}, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("total=%d rows=%d, want 2", total, len(rows))
	}
	if rows[0].ID != 11 {
		t.Errorf("expected newest lesson first, got %d", rows[0].ID)
	}

	rows, _, err = store.LessonsByCategory(nil, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("no categories should yield no lessons, got %d", len(rows))
	}
}
