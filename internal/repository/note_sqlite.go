package repository

import (
	"database/sql"
	"fmt"
	"time"

	"pinboard/internal/models"
)

type NoteSQLite struct {
	db *sql.DB
}

func NewNoteSQLite(db *sql.DB) *NoteSQLite {
	return &NoteSQLite{db: db}
}

var _ Notes = (*NoteSQLite)(nil)

const (
	selectNotesSQL = `SELECT id, text, created_at, pinned FROM notes WHERE username = ? ORDER BY id`
	deleteNotesSQL = `DELETE FROM notes WHERE username = ?`
	insertNoteSQL  = `INSERT INTO notes (username, id, text, created_at, pinned) VALUES (?, ?, ?, ?, ?)`
)

// Load fetches the user's full collection.
func (r *NoteSQLite) Load(username string) ([]models.Note, error) {
	rows, err := r.db.Query(selectNotesSQL, username)
	if err != nil {
		return nil, fmt.Errorf("select notes for %q: %w", username, err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Text, &n.CreatedAt, &n.Pinned); err != nil {
			return nil, fmt.Errorf("scan note row for %q: %w", username, err)
		}
		n.CreatedAt = n.CreatedAt.UTC()
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate note rows for %q: %w", username, err)
	}
	return notes, nil
}

// Save replaces the user's collection in one transaction, mirroring the
// file driver's full-document rewrite.
func (r *NoteSQLite) Save(username string, notes []models.Note) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save for %q: %w", username, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(deleteNotesSQL, username); err != nil {
		return fmt.Errorf("clear notes for %q: %w", username, err)
	}
	for _, n := range notes {
		ts := n.CreatedAt
		if ts.IsZero() {
			ts = time.Now()
		}
		if _, err := tx.Exec(insertNoteSQL, username, n.ID, n.Text, ts.UTC(), n.Pinned); err != nil {
			return fmt.Errorf("insert note %d for %q: %w", n.ID, username, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save for %q: %w", username, err)
	}
	return nil
}
