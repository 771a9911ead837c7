package storage

import (
	"path/filepath"
	"testing"

	"github.com/artor/studysearch/pkg/lms"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("closing store: %v", err)
		}
	})

	if err := store.InitializeSchema(); err != nil {
		t.Fatalf("initializing schema: %v", err)
	}
	return store
}

func mustInsertContent(t *testing.T, store *Store, row lms.ContentRow) {
	t.Helper()
	if err := store.InsertContent(row, lms.StatusPublish); err != nil {
		t.Fatal(err)
	}
}

func course(id int64, title, date string) lms.ContentRow {
	return lms.ContentRow{
		ID:    id,
		Type:  lms.ContentCourse,
		Title: title,
		Body:  "body of " + title,
		Slug:  "course-" + title,
		Date:  date,
	}
}

func lesson(id int64, title, date string) lms.ContentRow {
	return lms.ContentRow{
		ID:    id,
		Type:  lms.ContentLesson,
		Title: title,
		Body:  "body of " + title,
		Slug:  "lesson-" + title,
		Date:  date,
	}
}

// linkLessonToCourse wires lesson -> section -> course using a section id
// derived from the course.
func linkLessonToCourse(t *testing.T, store *Store, lessonID, courseID int64) {
	t.Helper()
	sectionID := courseID*100 + 1
	// One section per course is enough for tests; a duplicate insert just
	// means the section already exists.
	_ = store.InsertSection(sectionID, courseID)
	if err := store.InsertMaterial(lessonID, sectionID); err != nil {
		t.Fatal(err)
	}
}
