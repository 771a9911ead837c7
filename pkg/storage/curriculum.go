package storage

import (
	"database/sql"
	"fmt"

	"github.com/artor/studysearch/pkg/lms"
)

// HasCurriculum reports whether the curriculum chain tables exist in this
// database.
func (s *Store) HasCurriculum() bool {
	return s.hasTable("curriculum_materials") && s.hasTable("curriculum_sections")
}

// LessonCourseIDs resolves a lesson's owning courses through the two-hop
// curriculum chain (lesson -> section -> course). Returns nil when the
// chain tables are absent.
func (s *Store) LessonCourseIDs(lessonID int64) ([]int64, error) {
	if !s.HasCurriculum() {
		return nil, nil
	}

	rows, err := s.db.Query(`
		SELECT DISTINCT sec.course_id
		FROM curriculum_materials m
		INNER JOIN curriculum_sections sec ON m.section_id = sec.id
		WHERE m.lesson_id = ?
		ORDER BY sec.course_id`, lessonID)
	if err != nil {
		return nil, fmt.Errorf("querying curriculum chain: %w", err)
	}
	return scanIDs(rows)
}

// CourseIDsWithLessonInMeta scans the legacy curriculum metadata blob on
// course records for the lesson id appearing as a substring. This is a
// heuristic: numeric substrings can over-match (lesson 12 matches a blob
// containing 123).
func (s *Store) CourseIDsWithLessonInMeta(lessonID int64) ([]int64, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT p.id
		FROM content p
		INNER JOIN content_meta pm ON p.id = pm.content_id
		WHERE p.type = 'course'
		AND p.status = 'publish'
		AND pm.key = 'curriculum'
		AND pm.value LIKE ? ESCAPE '\'`,
		"%"+escapeLike(fmt.Sprintf("%d", lessonID))+"%")
	if err != nil {
		return nil, fmt.Errorf("querying curriculum meta: %w", err)
	}
	return scanIDs(rows)
}

// CourseIDsMatchingTitle finds published courses whose title equals or
// contains the given title, exact matches first then newest first, capped
// at 5 candidates.
func (s *Store) CourseIDsMatchingTitle(title string) ([]int64, error) {
	rows, err := s.db.Query(`
		SELECT id
		FROM content
		WHERE type = 'course'
		AND status = 'publish'
		AND (title = ? OR title LIKE ? ESCAPE '\')
		ORDER BY
			CASE WHEN title = ? THEN 1 ELSE 2 END,
			date DESC
		LIMIT 5`,
		title, "%"+escapeLike(title)+"%", title)
	if err != nil {
		return nil, fmt.Errorf("querying courses by title: %w", err)
	}
	return scanIDs(rows)
}

// CourseStats returns the enrichment record for a course, or nil when the
// stats table or row is absent.
func (s *Store) CourseStats(courseID int64) (*lms.CourseStats, error) {
	if !s.hasTable("course_stats") {
		return nil, nil
	}

	var stats lms.CourseStats
	err := s.db.QueryRow(
		"SELECT price, rating, students FROM course_stats WHERE course_id = ?", courseID,
	).Scan(&stats.Price, &stats.Rating, &stats.Students)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying course stats: %w", err)
	}
	return &stats, nil
}
