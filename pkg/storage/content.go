package storage

import (
	"database/sql"
	"fmt"

	"github.com/artor/studysearch/pkg/lms"
)

// Sort keys recognized for course queries. Unrecognized keys keep the
// default date-descending order. Sorting never applies to lessons.
const (
	SortDateHigh = "date_high"
	SortNewest   = "newest"
	SortDateLow  = "date_low"
	SortOldest   = "oldest"
	SortPriceHi  = "price_high"
	SortPriceLo  = "price_low"
	SortRating   = "rating"
	SortPopular  = "popular"
)

// KnownSortKey reports whether sort names a recognized course ordering.
func KnownSortKey(sort string) bool {
	switch sort {
	case SortDateHigh, SortNewest, SortDateLow, SortOldest,
		SortPriceHi, SortPriceLo, SortRating, SortPopular:
		return true
	}
	return false
}

// orderClause maps a sort key to its ORDER BY. Price, rating and student
// orderings need the course_stats join.
func orderClause(sort string) (clause string, needsStats bool) {
	switch sort {
	case SortDateLow, SortOldest:
		return "p.date ASC", false
	case SortPriceHi:
		return "cs.price DESC, p.date DESC", true
	case SortPriceLo:
		return "cs.price ASC, p.date DESC", true
	case SortRating:
		return "cs.rating DESC, p.date DESC", true
	case SortPopular:
		return "cs.students DESC, p.date DESC", true
	default:
		return "p.date DESC", false
	}
}

// CourseSearchOpts filters a course search. An empty Term means no text
// constraint; empty CategoryIDs means no category constraint. When both
// are present they apply conjunctively.
type CourseSearchOpts struct {
	Term        string
	CategoryIDs []int64
	Sort        string
	Limit       int
	Offset      int
}

// SearchCourses returns one page of matching published courses plus the
// total match count independent of the page window.
func (s *Store) SearchCourses(opts CourseSearchOpts) ([]lms.ContentRow, int, error) {
	from := "content p"
	where := []string{"p.type = 'course'", "p.status = 'publish'"}
	var args []any

	if len(opts.CategoryIDs) > 0 {
		from += " INNER JOIN content_categories cc ON p.id = cc.content_id"
		where = append(where, fmt.Sprintf("cc.term_id IN (%s)", placeholders(len(opts.CategoryIDs))))
		args = append(args, int64Args(opts.CategoryIDs)...)
	}

	if opts.Term != "" {
		where = append(where, `(
			LOWER(p.title) LIKE ? ESCAPE '\'
			OR LOWER(p.body) LIKE ? ESCAPE '\'
			OR LOWER(p.excerpt) LIKE ? ESCAPE '\'
		)`)
		pattern := likePattern(opts.Term)
		args = append(args, pattern, pattern, pattern)
	}

	order, needsStats := orderClause(opts.Sort)
	if needsStats {
		if s.hasTable("course_stats") {
			from += " LEFT JOIN course_stats cs ON p.id = cs.course_id"
		} else {
			order = "p.date DESC"
		}
	}

	whereSQL := joinAnd(where)

	total, err := s.countDistinct("p.id", from, whereSQL, args)
	if err != nil {
		return nil, 0, fmt.Errorf("counting courses: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT p.id, p.type, p.title, p.body, p.excerpt, p.slug, p.date, p.author_id
		FROM %s
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?`, from, whereSQL, order)

	rows, err := s.db.Query(query, append(args, opts.Limit, opts.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying courses: %w", err)
	}

	results, err := scanContentRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// SearchLessons returns one page of published lessons matching the term,
// optionally restricted to lessons whose owning course carries one of the
// categories. Category filtering traverses the curriculum chain; when the
// chain tables are absent a category-filtered search yields no lessons
// rather than an error.
func (s *Store) SearchLessons(term string, categoryIDs []int64, limit, offset int) ([]lms.ContentRow, int, error) {
	from := "content l"
	where := []string{"l.type = 'lesson'", "l.status = 'publish'"}
	var args []any

	if term != "" {
		where = append(where, `(
			LOWER(l.title) LIKE ? ESCAPE '\'
			OR LOWER(l.body) LIKE ? ESCAPE '\'
			OR LOWER(l.excerpt) LIKE ? ESCAPE '\'
		)`)
		pattern := likePattern(term)
		args = append(args, pattern, pattern, pattern)
	}

	if len(categoryIDs) > 0 {
		if !s.HasCurriculum() {
			return nil, 0, nil
		}
		from += `
			INNER JOIN curriculum_materials m ON l.id = m.lesson_id
			INNER JOIN curriculum_sections sec ON m.section_id = sec.id
			INNER JOIN content c ON sec.course_id = c.id
			INNER JOIN content_categories cc ON c.id = cc.content_id`
		where = append(where,
			"c.type = 'course'",
			"c.status = 'publish'",
			fmt.Sprintf("cc.term_id IN (%s)", placeholders(len(categoryIDs))),
		)
		args = append(args, int64Args(categoryIDs)...)
	}

	whereSQL := joinAnd(where)

	total, err := s.countDistinct("l.id", from, whereSQL, args)
	if err != nil {
		return nil, 0, fmt.Errorf("counting lessons: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT l.id, l.type, l.title, l.body, l.excerpt, l.slug, l.date, l.author_id
		FROM %s
		WHERE %s
		ORDER BY l.date DESC
		LIMIT ? OFFSET ?`, from, whereSQL)

	rows, err := s.db.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying lessons: %w", err)
	}

	results, err := scanContentRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// LessonsByCategory returns published lessons belonging to courses in the
// given categories, with no text constraint.
func (s *Store) LessonsByCategory(categoryIDs []int64, limit, offset int) ([]lms.ContentRow, int, error) {
	if len(categoryIDs) == 0 {
		return nil, 0, nil
	}
	return s.SearchLessons("", categoryIDs, limit, offset)
}

func (s *Store) countDistinct(column, from, whereSQL string, args []any) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(DISTINCT %s) FROM %s WHERE %s", column, from, whereSQL)
	var total int
	if err := s.db.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func joinAnd(clauses []string) string {
	out := clauses[0]
	for _, c := range clauses[1:] {
		out += " AND " + c
	}
	return out
}

func scanContentRows(rows *sql.Rows) ([]lms.ContentRow, error) {
	defer func() {
		if err := rows.Close(); err != nil {
			fmt.Printf("Warning: failed to close rows: %v\n", err)
		}
	}()

	var results []lms.ContentRow
	for rows.Next() {
		var row lms.ContentRow
		if err := rows.Scan(&row.ID, &row.Type, &row.Title, &row.Body, &row.Excerpt, &row.Slug, &row.Date, &row.AuthorID); err != nil {
			return nil, fmt.Errorf("scanning content row: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ContentByID fetches a single published content row.
func (s *Store) ContentByID(id int64) (*lms.ContentRow, error) {
	var row lms.ContentRow
	err := s.db.QueryRow(`
		SELECT id, type, title, body, excerpt, slug, date, author_id
		FROM content
		WHERE id = ? AND status = 'publish'`, id).
		Scan(&row.ID, &row.Type, &row.Title, &row.Body, &row.Excerpt, &row.Slug, &row.Date, &row.AuthorID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching content %d: %w", id, err)
	}
	return &row, nil
}

// CourseSlug returns the slug of a published course, or "" when the course
// is unknown.
func (s *Store) CourseSlug(courseID int64) (string, error) {
	var slug string
	err := s.db.QueryRow(
		"SELECT slug FROM content WHERE id = ? AND type = 'course' AND status = 'publish'", courseID,
	).Scan(&slug)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("fetching course slug %d: %w", courseID, err)
	}
	return slug, nil
}
