// Package storage provides read access to the LMS content database:
// course/lesson search, taxonomy lookups, curriculum chain traversal and
// per-user progress rows. The query core never writes; the seed helpers
// exist for fixtures and tests only.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/artor/studysearch/pkg/db"
)

type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Apply performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
		"PRAGMA cache_size = -64000", // 64MB cache
		"PRAGMA temp_store = memory",
	}

	for _, pragma := range pragmas {
		if _, err := sqlDB.Exec(pragma); err != nil {
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	return &Store{db: sqlDB}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for migrations.
func (s *Store) DB() *sql.DB {
	return s.db
}

// InitializeSchema brings the database to the current schema version.
func (s *Store) InitializeSchema() error {
	return db.InitializeDatabase(s.db)
}

// hasTable reports whether a table exists. Older content databases may
// predate the curriculum migration; queries that need those tables probe
// first and degrade instead of failing.
func (s *Store) hasTable(name string) bool {
	var n string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&n)
	return err == nil
}

// escapeLike escapes LIKE wildcards in user input; patterns built with it
// must use ESCAPE '\'.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// likePattern builds the case-insensitive substring pattern for a search
// term.
func likePattern(term string) string {
	return "%" + escapeLike(strings.ToLower(term)) + "%"
}

// placeholders returns a "?, ?, ?" list for n bound parameters.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
