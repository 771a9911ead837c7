// Package lms defines the domain types shared by the storage, search and
// progress layers: content rows as stored, the API-facing item shape, the
// course taxonomy and per-user progress records.
package lms

import "time"

// ContentType distinguishes the two content collections.
type ContentType string

const (
	ContentCourse ContentType = "course"
	ContentLesson ContentType = "lesson"
)

// Content statuses. Only published content is ever returned by queries.
const (
	StatusPublish = "publish"
	StatusDraft   = "draft"
)

// DateFormat is the storage format for content dates.
const DateFormat = "2006-01-02 15:04:05"

// ContentRow is a raw row from the content table, before formatting.
type ContentRow struct {
	ID       int64
	Type     ContentType
	Title    string
	Body     string
	Excerpt  string
	Slug     string
	Date     string
	AuthorID int64
}

// ParseDate parses a stored content date. Unparseable dates yield the zero
// time so they sort as the oldest possible value.
func ParseDate(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Item is the normalized, API-facing shape of a course or lesson.
//
// Price, Rating and Students are enrichment fields for courses; they are
// omitted entirely when the enrichment source is unavailable. CourseID and
// Courses carry lesson ownership resolved through the curriculum chain.
type Item struct {
	ID      int64       `json:"id"`
	Title   string      `json:"title"`
	Excerpt string      `json:"excerpt"`
	Link    string      `json:"link"`
	Type    ContentType `json:"type"`
	Date    string      `json:"date"`
	Author  int64       `json:"author"`

	Price    *float64 `json:"price,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
	Students *int64   `json:"students,omitempty"`

	CourseID *int64  `json:"course_id,omitempty"`
	Courses  []int64 `json:"courses,omitempty"`
}

// CourseStats is the optional per-course enrichment record.
type CourseStats struct {
	Price    float64
	Rating   float64
	Students int64
}

// Category is a taxonomy term. Identity is the term ID; slug and name are
// alternate lookup keys.
type Category struct {
	TermID int64
	Slug   string
	Name   string
}

// User identifies an agent whose progress can be queried.
type User struct {
	ID    int64
	Email string
	Login string
}

// CourseProgress is one (user, course) enrollment row. Times are unix
// seconds; zero means unset.
type CourseProgress struct {
	UserID          int64 `json:"user_id"`
	CourseID        int64 `json:"course_id"`
	ProgressPercent int   `json:"progress_percent"`
	CurrentLessonID int64 `json:"current_lesson_id"`
	StartTime       int64 `json:"start_time"`
	EndTime         int64 `json:"end_time"`
}

// LessonProgress is one (user, lesson) interaction row. Progress is nil
// when the host never recorded a percentage for the lesson.
type LessonProgress struct {
	UserID    int64 `json:"user_id"`
	LessonID  int64 `json:"lesson_id"`
	CourseID  int64 `json:"course_id"`
	Progress  *int  `json:"progress"`
	StartTime int64 `json:"start_time"`
	EndTime   int64 `json:"end_time"`
}

// Completed reports whether a lesson interaction counts as completed:
// either the recorded progress reached 100% or the lesson has an end time.
// Unlike courses, the lesson threshold is fixed at 100%.
func (p LessonProgress) Completed() bool {
	return (p.Progress != nil && *p.Progress >= 100) || p.EndTime > 0
}
