package storage

import (
	"testing"

	"github.com/artor/studysearch/pkg/lms"
)

func TestUserLookups(t *testing.T) {
	store := newTestStore(t)

	if err := store.InsertUser(lms.User{ID: 42, Email: "ana@example.com", Login: "ana"}); err != nil {
		t.Fatal(err)
	}

	byID, err := store.UserByID(42)
	if err != nil {
		t.Fatal(err)
	}
	if byID == nil || byID.Login != "ana" {
		t.Fatalf("UserByID = %+v", byID)
	}

	byEmail, err := store.UserByEmail("ana@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if byEmail == nil || byEmail.ID != 42 {
		t.Fatalf("UserByEmail = %+v", byEmail)
	}

	byLogin, err := store.UserByLogin("ana")
	if err != nil {
		t.Fatal(err)
	}
	if byLogin == nil || byLogin.ID != 42 {
		t.Fatalf("UserByLogin = %+v", byLogin)
	}

	missing, err := store.UserByLogin("nobody")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Errorf("unknown login = %+v, want nil", missing)
	}
}

func TestProgressRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if err := store.InsertUser(lms.User{ID: 1, Email: "u@example.com", Login: "u"}); err != nil {
		t.Fatal(err)
	}

	if err := store.UpsertCourseProgress(lms.CourseProgress{
		UserID: 1, CourseID: 100, ProgressPercent: 70, CurrentLessonID: 10, StartTime: 1700000000,
	}); err != nil {
		t.Fatal(err)
	}

	pct := 40
	if err := store.UpsertLessonProgress(lms.LessonProgress{
		UserID: 1, LessonID: 10, CourseID: 100, Progress: &pct, StartTime: 1700000100,
	}); err != nil {
		t.Fatal(err)
	}
	if err := store.UpsertLessonProgress(lms.LessonProgress{
		UserID: 1, LessonID: 11, CourseID: 100, StartTime: 1700000200, EndTime: 1700000300,
	}); err != nil {
		t.Fatal(err)
	}

	courses, err := store.CourseProgressByUser(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(courses) != 1 || courses[0].ProgressPercent != 70 {
		t.Errorf("courses = %+v", courses)
	}

	lessons, err := store.LessonProgressByUser(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(lessons) != 2 {
		t.Fatalf("lessons = %+v", lessons)
	}
	if lessons[0].Progress == nil || *lessons[0].Progress != 40 {
		t.Errorf("lesson 10 progress = %v, want 40", lessons[0].Progress)
	}
	if lessons[1].Progress != nil {
		t.Errorf("lesson 11 progress = %v, want nil", lessons[1].Progress)
	}

	none, err := store.CourseProgressByUser(99)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("unknown user progress = %+v, want empty", none)
	}
}
