package storage

import (
	"fmt"

	"github.com/artor/studysearch/pkg/lms"
)

// CourseProgressByUser returns every course enrollment row for a user.
func (s *Store) CourseProgressByUser(userID int64) ([]lms.CourseProgress, error) {
	rows, err := s.db.Query(`
		SELECT user_id, course_id, progress_percent, current_lesson_id, start_time, end_time
		FROM user_courses
		WHERE user_id = ?
		ORDER BY course_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying course progress: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			fmt.Printf("Warning: failed to close rows: %v\n", err)
		}
	}()

	var records []lms.CourseProgress
	for rows.Next() {
		var rec lms.CourseProgress
		if err := rows.Scan(&rec.UserID, &rec.CourseID, &rec.ProgressPercent, &rec.CurrentLessonID, &rec.StartTime, &rec.EndTime); err != nil {
			return nil, fmt.Errorf("scanning course progress row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LessonProgressByUser returns every lesson interaction row for a user.
func (s *Store) LessonProgressByUser(userID int64) ([]lms.LessonProgress, error) {
	rows, err := s.db.Query(`
		SELECT user_id, lesson_id, course_id, progress, start_time, end_time
		FROM user_lessons
		WHERE user_id = ?
		ORDER BY lesson_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying lesson progress: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			fmt.Printf("Warning: failed to close rows: %v\n", err)
		}
	}()

	var records []lms.LessonProgress
	for rows.Next() {
		var rec lms.LessonProgress
		if err := rows.Scan(&rec.UserID, &rec.LessonID, &rec.CourseID, &rec.Progress, &rec.StartTime, &rec.EndTime); err != nil {
			return nil, fmt.Errorf("scanning lesson progress row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
