package repository

import (
	"database/sql"
	"errors"

	"pinboard/internal/models"
)

// ErrMalformedStorage marks a note document that could not be decoded.
// Callers recover by treating the collection as empty; the unreadable
// content is discarded on the next save.
var ErrMalformedStorage = errors.New("malformed note storage")

// Credentials is the shared username → password-hash store.
type Credentials interface {
	All() (map[string]string, error)
	GetByUsername(username string) (*models.User, error)
	Put(username, hash string) error
}

// Notes persists one full collection per user. Save always rewrites the
// whole collection; there are no partial updates.
type Notes interface {
	Load(username string) ([]models.Note, error)
	Save(username string, notes []models.Note) error
}

type Repository struct {
	Credentials Credentials
	Notes       Notes
}

// NewFileRepository wires the flat-file drivers: one shared credentials
// document and one note document per user under notesDir.
func NewFileRepository(credentialsPath, notesDir string) *Repository {
	return &Repository{
		Credentials: NewUserFile(credentialsPath),
		Notes:       NewNoteFile(notesDir),
	}
}

// NewSQLiteRepository wires the sqlite-backed drivers onto an open handle.
func NewSQLiteRepository(db *sql.DB) *Repository {
	return &Repository{
		Credentials: NewUserSQLite(db),
		Notes:       NewNoteSQLite(db),
	}
}
