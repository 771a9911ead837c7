// Package progress aggregates per-agent learning progress into the
// completed/ongoing report served by the agent-progress endpoint.
package progress

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/artor/studysearch/pkg/lms"
	"github.com/artor/studysearch/pkg/log"
	"github.com/artor/studysearch/pkg/storage"
)

// Status filter values. Anything else behaves like StatusAll.
const (
	StatusAll       = "all"
	StatusCompleted = "completed"
	StatusOngoing   = "ongoing"
)

// CourseBuckets splits course enrollments by completion.
type CourseBuckets struct {
	Completed []lms.CourseProgress `json:"completed"`
	Ongoing   []lms.CourseProgress `json:"ongoing"`
}

// LessonBuckets splits lesson interactions by completion.
type LessonBuckets struct {
	Completed []lms.LessonProgress `json:"completed"`
	Ongoing   []lms.LessonProgress `json:"ongoing"`
}

// Counts is one collection's summary line.
type Counts struct {
	Completed int `json:"completed"`
	Ongoing   int `json:"ongoing"`
}

// Summary totals the returned buckets.
type Summary struct {
	Courses Counts `json:"courses"`
	Lessons Counts `json:"lessons"`
}

// Report is the agent-progress payload.
type Report struct {
	AgentID         int64         `json:"agent_id"`
	StatusFilter    string        `json:"status_filter"`
	CourseThreshold int           `json:"course_threshold"`
	Courses         CourseBuckets `json:"courses"`
	Lessons         LessonBuckets `json:"lessons"`
	Summary         Summary       `json:"summary"`
}

// Aggregator builds progress reports from the store's enrollment and
// interaction rows. The course completion threshold can be swapped at
// runtime when the configuration is reloaded.
type Aggregator struct {
	store     *storage.Store
	threshold atomic.Int64
	logger    *log.Logger
}

func NewAggregator(store *storage.Store, threshold int) *Aggregator {
	a := &Aggregator{
		store:  store,
		logger: log.ForService("progress"),
	}
	a.threshold.Store(int64(threshold))
	return a
}

// Threshold is the minimum progress_percent for a course to count as
// completed. The boundary value itself is completed.
func (a *Aggregator) Threshold() int {
	return int(a.threshold.Load())
}

// SetThreshold updates the completion threshold, typically after a config
// reload.
func (a *Aggregator) SetThreshold(threshold int) {
	a.threshold.Store(int64(threshold))
}

// ResolveAgent resolves an agent identifier to a user. The identifier is
// tried as a numeric user ID, then as an email, then as a login name.
func (a *Aggregator) ResolveAgent(identifier string) (*lms.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("agent identifier required: %w", lms.ErrBadRequest)
	}

	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		user, err := a.store.UserByID(id)
		if err != nil {
			return nil, fmt.Errorf("resolving agent by id: %w", err)
		}
		if user != nil {
			return user, nil
		}
	}

	user, err := a.store.UserByEmail(identifier)
	if err != nil {
		return nil, fmt.Errorf("resolving agent by email: %w", err)
	}
	if user == nil {
		user, err = a.store.UserByLogin(identifier)
		if err != nil {
			return nil, fmt.Errorf("resolving agent by login: %w", err)
		}
	}
	if user == nil {
		return nil, fmt.Errorf("agent %q: %w", identifier, lms.ErrNotFound)
	}
	return user, nil
}

// Report aggregates an agent's progress. The status filter empties the
// opposite bucket rather than omitting it, so the payload shape is stable
// across filters. Lessons are skipped entirely when includeLessons is
// false; their buckets stay present but empty.
func (a *Aggregator) Report(identifier, status string, includeLessons bool) (*Report, error) {
	user, err := a.ResolveAgent(identifier)
	if err != nil {
		return nil, err
	}

	status = normalizeStatus(status)
	threshold := a.Threshold()

	report := &Report{
		AgentID:         user.ID,
		StatusFilter:    status,
		CourseThreshold: threshold,
		Courses:         CourseBuckets{Completed: []lms.CourseProgress{}, Ongoing: []lms.CourseProgress{}},
		Lessons:         LessonBuckets{Completed: []lms.LessonProgress{}, Ongoing: []lms.LessonProgress{}},
	}

	courseRows, err := a.store.CourseProgressByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("aggregating course progress: %w", err)
	}
	for _, rec := range courseRows {
		if rec.ProgressPercent >= threshold {
			report.Courses.Completed = append(report.Courses.Completed, rec)
		} else {
			report.Courses.Ongoing = append(report.Courses.Ongoing, rec)
		}
	}

	if includeLessons {
		lessonRows, err := a.store.LessonProgressByUser(user.ID)
		if err != nil {
			return nil, fmt.Errorf("aggregating lesson progress: %w", err)
		}
		for _, rec := range lessonRows {
			if rec.Completed() {
				report.Lessons.Completed = append(report.Lessons.Completed, rec)
			} else {
				report.Lessons.Ongoing = append(report.Lessons.Ongoing, rec)
			}
		}
	}

	switch status {
	case StatusCompleted:
		report.Courses.Ongoing = []lms.CourseProgress{}
		report.Lessons.Ongoing = []lms.LessonProgress{}
	case StatusOngoing:
		report.Courses.Completed = []lms.CourseProgress{}
		report.Lessons.Completed = []lms.LessonProgress{}
	}

	report.Summary = Summary{
		Courses: Counts{
			Completed: len(report.Courses.Completed),
			Ongoing:   len(report.Courses.Ongoing),
		},
		Lessons: Counts{
			Completed: len(report.Lessons.Completed),
			Ongoing:   len(report.Lessons.Ongoing),
		},
	}

	a.logger.Debugf("agent %d: %d/%d courses, %d/%d lessons (filter %s)",
		user.ID,
		report.Summary.Courses.Completed, report.Summary.Courses.Ongoing,
		report.Summary.Lessons.Completed, report.Summary.Lessons.Ongoing,
		status)
	return report, nil
}

func normalizeStatus(status string) string {
	switch status {
	case StatusCompleted, StatusOngoing:
		return status
	default:
		return StatusAll
	}
}
