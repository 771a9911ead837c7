package storage

import (
	"fmt"

	"github.com/artor/studysearch/pkg/lms"
)

// Fixture write helpers. The query core is read-only; these exist for the
// seed command and for tests. The host application owns the data in a real
// deployment.

func (s *Store) InsertContent(row lms.ContentRow, status string) error {
	_, err := s.db.Exec(`
		INSERT INTO content (id, type, title, body, excerpt, slug, status, date, author_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID, row.Type, row.Title, row.Body, row.Excerpt, row.Slug, status, row.Date, row.AuthorID)
	if err != nil {
		return fmt.Errorf("inserting content %d: %w", row.ID, err)
	}
	return nil
}

func (s *Store) InsertCategory(cat lms.Category) error {
	_, err := s.db.Exec(
		"INSERT INTO categories (term_id, slug, name) VALUES (?, ?, ?)",
		cat.TermID, cat.Slug, cat.Name)
	if err != nil {
		return fmt.Errorf("inserting category %d: %w", cat.TermID, err)
	}
	return nil
}

func (s *Store) AssignCategory(contentID, termID int64) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO content_categories (content_id, term_id) VALUES (?, ?)",
		contentID, termID)
	if err != nil {
		return fmt.Errorf("assigning category %d to content %d: %w", termID, contentID, err)
	}
	return nil
}

func (s *Store) InsertSection(sectionID, courseID int64) error {
	_, err := s.db.Exec(
		"INSERT INTO curriculum_sections (id, course_id) VALUES (?, ?)",
		sectionID, courseID)
	if err != nil {
		return fmt.Errorf("inserting section %d: %w", sectionID, err)
	}
	return nil
}

func (s *Store) InsertMaterial(lessonID, sectionID int64) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO curriculum_materials (lesson_id, section_id) VALUES (?, ?)",
		lessonID, sectionID)
	if err != nil {
		return fmt.Errorf("inserting material %d: %w", lessonID, err)
	}
	return nil
}

func (s *Store) SetContentMeta(contentID int64, key, value string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO content_meta (content_id, key, value) VALUES (?, ?, ?)",
		contentID, key, value)
	if err != nil {
		return fmt.Errorf("setting meta %q on content %d: %w", key, contentID, err)
	}
	return nil
}

func (s *Store) SetCourseStats(courseID int64, stats lms.CourseStats) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO course_stats (course_id, price, rating, students) VALUES (?, ?, ?, ?)",
		courseID, stats.Price, stats.Rating, stats.Students)
	if err != nil {
		return fmt.Errorf("setting stats for course %d: %w", courseID, err)
	}
	return nil
}

func (s *Store) InsertUser(user lms.User) error {
	_, err := s.db.Exec(
		"INSERT INTO users (id, email, login) VALUES (?, ?, ?)",
		user.ID, user.Email, user.Login)
	if err != nil {
		return fmt.Errorf("inserting user %d: %w", user.ID, err)
	}
	return nil
}

func (s *Store) UpsertCourseProgress(rec lms.CourseProgress) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO user_courses
		(user_id, course_id, progress_percent, current_lesson_id, start_time, end_time)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.UserID, rec.CourseID, rec.ProgressPercent, rec.CurrentLessonID, rec.StartTime, rec.EndTime)
	if err != nil {
		return fmt.Errorf("upserting course progress for user %d: %w", rec.UserID, err)
	}
	return nil
}

func (s *Store) UpsertLessonProgress(rec lms.LessonProgress) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO user_lessons
		(user_id, lesson_id, course_id, progress, start_time, end_time)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.UserID, rec.LessonID, rec.CourseID, rec.Progress, rec.StartTime, rec.EndTime)
	if err != nil {
		return fmt.Errorf("upserting lesson progress for user %d: %w", rec.UserID, err)
	}
	return nil
}
