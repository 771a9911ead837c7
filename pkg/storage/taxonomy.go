package storage

import (
	"database/sql"
	"fmt"

	"github.com/artor/studysearch/pkg/lms"
)

// CategoryByID looks a category up by term ID. Returns nil when the term
// does not exist.
func (s *Store) CategoryByID(termID int64) (*lms.Category, error) {
	return s.categoryQuery("SELECT term_id, slug, name FROM categories WHERE term_id = ?", termID)
}

// CategoryBySlug looks a category up by exact slug. Slugs are
// case-sensitive.
func (s *Store) CategoryBySlug(slug string) (*lms.Category, error) {
	return s.categoryQuery("SELECT term_id, slug, name FROM categories WHERE slug = ?", slug)
}

// CategoryByName looks a category up by display name, case-insensitively.
// When several terms share a name the lowest term ID wins.
func (s *Store) CategoryByName(name string) (*lms.Category, error) {
	return s.categoryQuery(`
		SELECT term_id, slug, name FROM categories
		WHERE LOWER(name) = LOWER(?)
		ORDER BY term_id
		LIMIT 1`, name)
}

func (s *Store) categoryQuery(query string, arg any) (*lms.Category, error) {
	var cat lms.Category
	err := s.db.QueryRow(query, arg).Scan(&cat.TermID, &cat.Slug, &cat.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up category: %w", err)
	}
	return &cat, nil
}

// CourseCategoryIDs returns the term IDs assigned to a course.
func (s *Store) CourseCategoryIDs(courseID int64) ([]int64, error) {
	rows, err := s.db.Query(
		"SELECT term_id FROM content_categories WHERE content_id = ?", courseID)
	if err != nil {
		return nil, fmt.Errorf("querying course categories: %w", err)
	}
	return scanIDs(rows)
}

func scanIDs(rows *sql.Rows) ([]int64, error) {
	defer func() {
		if err := rows.Close(); err != nil {
			fmt.Printf("Warning: failed to close rows: %v\n", err)
		}
	}()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
