package storage

import (
	"database/sql"
	"fmt"

	"github.com/artor/studysearch/pkg/lms"
)

// UserByID returns the user with the given ID, or nil when unknown.
func (s *Store) UserByID(id int64) (*lms.User, error) {
	return s.userQuery("SELECT id, email, login FROM users WHERE id = ?", id)
}

// UserByEmail returns the user with the given email, or nil when unknown.
func (s *Store) UserByEmail(email string) (*lms.User, error) {
	return s.userQuery("SELECT id, email, login FROM users WHERE email = ?", email)
}

// UserByLogin returns the user with the given login name, or nil when
// unknown.
func (s *Store) UserByLogin(login string) (*lms.User, error) {
	return s.userQuery("SELECT id, email, login FROM users WHERE login = ?", login)
}

func (s *Store) userQuery(query string, arg any) (*lms.User, error) {
	var user lms.User
	err := s.db.QueryRow(query, arg).Scan(&user.ID, &user.Email, &user.Login)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	return &user, nil
}
