package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"pinboard/internal/models"
)

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

// Ensure implementation of Credentials interface at compile time.
var _ Credentials = (*UserSQLite)(nil)

const (
	selectAllUsersSQL = `SELECT username, password_hash FROM users`
	selectUserSQL     = `SELECT password_hash FROM users WHERE username = ?`
	upsertUserSQL     = `INSERT INTO users (username, password_hash) VALUES (?, ?)
		ON CONFLICT(username) DO UPDATE SET password_hash=excluded.password_hash`
)

// All returns the full username → hash mapping.
func (r *UserSQLite) All() (map[string]string, error) {
	rows, err := r.db.Query(selectAllUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := map[string]string{}
	for rows.Next() {
		var username, hash string
		if err := rows.Scan(&username, &hash); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users[username] = hash
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}
	return users, nil
}

// GetByUsername fetches a user. Returns (nil, nil) if not found.
func (r *UserSQLite) GetByUsername(username string) (*models.User, error) {
	var hash string
	err := r.db.QueryRow(selectUserSQL, username).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &models.User{Username: username, PasswordHash: hash}, nil
}

// Put stores the hash for username.
func (r *UserSQLite) Put(username, hash string) error {
	if _, err := r.db.Exec(upsertUserSQL, username, hash); err != nil {
		return fmt.Errorf("upsert user %q: %w", username, err)
	}
	return nil
}
