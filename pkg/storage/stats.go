package storage

import "fmt"

// Stats summarizes the content database.
type Stats struct {
	Courses    int64 `json:"courses"`
	Lessons    int64 `json:"lessons"`
	Categories int64 `json:"categories"`
	Users      int64 `json:"users"`
}

// GetStats counts published content, categories and users.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	counts := []struct {
		query string
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM content WHERE type = 'course' AND status = 'publish'", &stats.Courses},
		{"SELECT COUNT(*) FROM content WHERE type = 'lesson' AND status = 'publish'", &stats.Lessons},
		{"SELECT COUNT(*) FROM categories", &stats.Categories},
		{"SELECT COUNT(*) FROM users", &stats.Users},
	}

	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("counting: %w", err)
		}
	}

	return stats, nil
}
