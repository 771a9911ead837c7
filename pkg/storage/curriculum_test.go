package storage

import (
	"testing"

	"github.com/artor/studysearch/pkg/lms"
)

func TestLessonCourseIDs(t *testing.T) {
	store := newTestStore(t)

	mustInsertContent(t, store, course(1, "Course A", "2024-01-10 09:00:00"))
	mustInsertContent(t, store, course(2, "Course B", "2024-01-11 09:00:00"))
	mustInsertContent(t, store, lesson(10, "Shared Lesson", "2024-01-12 09:00:00"))
	linkLessonToCourse(t, store, 10, 1)
	linkLessonToCourse(t, store, 10, 2)

	ids, err := store.LessonCourseIDs(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("ids = %v, want [1 2]", ids)
	}

	ids, err = store.LessonCourseIDs(99)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Errorf("unknown lesson ids = %v, want empty", ids)
	}
}

func TestLessonCourseIDsWithoutTables(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.db.Exec("DROP TABLE curriculum_materials"); err != nil {
		t.Fatal(err)
	}

	ids, err := store.LessonCourseIDs(10)
	if err != nil {
		t.Fatal(err)
	}
	if ids != nil {
		t.Errorf("ids = %v, want nil when the chain is unavailable", ids)
	}
}

func TestCourseIDsWithLessonInMeta(t *testing.T) {
	store := newTestStore(t)

	mustInsertContent(t, store, course(1, "Legacy Course", "2024-01-10 09:00:00"))
	mustInsertContent(t, store, course(2, "Other Course", "2024-01-11 09:00:00"))
	if err := store.SetContentMeta(1, "curriculum", "intro,42,outro"); err != nil {
		t.Fatal(err)
	}
	if err := store.SetContentMeta(2, "curriculum", "1,2,3"); err != nil {
		t.Fatal(err)
	}

	ids, err := store.CourseIDsWithLessonInMeta(42)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Errorf("ids = %v, want [1]", ids)
	}

	// Substring matching over-matches by design: lesson 2 hits "42" too.
	ids, err = store.CourseIDsWithLessonInMeta(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Errorf("ids = %v, want both courses via substring match", ids)
	}
}

func TestCourseIDsMatchingTitle(t *testing.T) {
	store := newTestStore(t)

	mustInsertContent(t, store, course(1, "Intro to Go", "2024-01-10 09:00:00"))
	mustInsertContent(t, store, course(2, "Intro to Go and Beyond", "2024-03-10 09:00:00"))
	mustInsertContent(t, store, course(3, "Unrelated", "2024-02-10 09:00:00"))

	ids, err := store.CourseIDsMatchingTitle("Intro to Go")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %v, want 2 candidates", ids)
	}
	if ids[0] != 1 {
		t.Errorf("exact title match must rank first, got %v", ids)
	}
}

func TestCourseIDsMatchingTitleCap(t *testing.T) {
	store := newTestStore(t)

	for i := int64(1); i <= 8; i++ {
		mustInsertContent(t, store, course(i, "Popular Topic", "2024-01-10 09:00:00"))
	}

	ids, err := store.CourseIDsMatchingTitle("Popular Topic")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 5 {
		t.Errorf("ids = %v, want cap of 5", ids)
	}
}

func TestCourseStats(t *testing.T) {
	store := newTestStore(t)

	mustInsertContent(t, store, course(1, "Priced", "2024-01-10 09:00:00"))
	if err := store.SetCourseStats(1, lms.CourseStats{Price: 49.99, Rating: 4.5, Students: 1200}); err != nil {
		t.Fatal(err)
	}

	stats, err := store.CourseStats(1)
	if err != nil {
		t.Fatal(err)
	}
	if stats == nil || stats.Price != 49.99 || stats.Rating != 4.5 || stats.Students != 1200 {
		t.Errorf("stats = %+v", stats)
	}

	stats, err = store.CourseStats(2)
	if err != nil {
		t.Fatal(err)
	}
	if stats != nil {
		t.Errorf("missing row should yield nil, got %+v", stats)
	}
}
