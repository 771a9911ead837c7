package search

import (
	"fmt"
	"strings"

	"github.com/artor/studysearch/pkg/lms"
	"github.com/artor/studysearch/pkg/log"
	"github.com/artor/studysearch/pkg/storage"
)

// ExcerptWords is the word budget for generated excerpts.
const ExcerptWords = 20

// CourseEnricher is the optional host capability providing pricing, rating
// and enrollment numbers for courses. Enrichment is best effort: a missing
// enricher or a failing lookup just leaves the fields off the item.
type CourseEnricher interface {
	CourseStats(courseID int64) (*lms.CourseStats, error)
}

// Formatter turns raw content rows into API items.
type Formatter struct {
	store           *storage.Store
	linker          *Linker
	enricher        CourseEnricher
	baseURL         string
	coursesPageSlug string
	logger          *log.Logger
}

func NewFormatter(store *storage.Store, linker *Linker, enricher CourseEnricher, baseURL, coursesPageSlug string) *Formatter {
	return &Formatter{
		store:           store,
		linker:          linker,
		enricher:        enricher,
		baseURL:         strings.TrimRight(baseURL, "/"),
		coursesPageSlug: coursesPageSlug,
		logger:          log.ForService("search"),
	}
}

// CourseItem formats a course row, attaching enrichment fields when the
// enricher has them.
func (f *Formatter) CourseItem(row lms.ContentRow) lms.Item {
	item := lms.Item{
		ID:      row.ID,
		Title:   row.Title,
		Excerpt: TrimWords(firstNonEmpty(row.Excerpt, row.Body), ExcerptWords),
		Link:    f.courseLink(row.Slug),
		Type:    lms.ContentCourse,
		Date:    row.Date,
		Author:  row.AuthorID,
	}

	if f.enricher != nil {
		stats, err := f.enricher.CourseStats(row.ID)
		if err != nil {
			// Enrichment must never fail the request.
			f.logger.Debugf("enrichment failed for course %d: %v", row.ID, err)
		} else if stats != nil {
			price, rating, students := stats.Price, stats.Rating, stats.Students
			item.Price = &price
			item.Rating = &rating
			item.Students = &students
		}
	}

	return item
}

// LessonItem formats a lesson row, resolving its owning courses and
// building the lesson link.
func (f *Formatter) LessonItem(row lms.ContentRow) lms.Item {
	item := lms.Item{
		ID:      row.ID,
		Title:   row.Title,
		Excerpt: TrimWords(firstNonEmpty(row.Excerpt, row.Body), ExcerptWords),
		Type:    lms.ContentLesson,
		Date:    row.Date,
		Author:  row.AuthorID,
	}

	courseIDs := f.linker.CoursesForLesson(row.ID)
	if len(courseIDs) > 0 {
		primary := courseIDs[0]
		item.CourseID = &primary
		item.Courses = courseIDs
	}
	item.Link = f.lessonLink(row, item.CourseID)

	return item
}

// lessonLink builds {base}/{courses_page_slug}/{course_slug}/{lesson_id}/
// when an owning course is resolved, else the lesson's own permalink.
func (f *Formatter) lessonLink(row lms.ContentRow, courseID *int64) string {
	if courseID != nil {
		slug, err := f.store.CourseSlug(*courseID)
		if err != nil {
			f.logger.Debugf("course slug lookup for %d: %v", *courseID, err)
		}
		if slug != "" {
			return fmt.Sprintf("%s/%s/%s/%d/", f.baseURL, f.coursesPageSlug, slug, row.ID)
		}
	}
	return fmt.Sprintf("%s/%s/", f.baseURL, row.Slug)
}

func (f *Formatter) courseLink(slug string) string {
	return fmt.Sprintf("%s/%s/%s/", f.baseURL, f.coursesPageSlug, slug)
}

// TrimWords cuts text to at most n whitespace-separated words, appending
// an ellipsis when something was cut.
func TrimWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + "…"
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
