package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pinboard/internal/models"
)

// NoteFile stores one JSON document per user under dir, an array of note
// records. Every save rewrites the user's whole document.
type NoteFile struct {
	dir string
}

func NewNoteFile(dir string) *NoteFile {
	return &NoteFile{dir: dir}
}

var _ Notes = (*NoteFile)(nil)

// noteRecord is the on-disk shape. CreatedAt and Pinned are optional so
// documents written before those fields existed still decode; Load
// backfills them.
type noteRecord struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at,omitempty"`
	Pinned    *bool  `json:"pinned,omitempty"`
}

func (r *NoteFile) userPath(username string) string {
	// usernames are normalized upstream; Base guards against separators
	return filepath.Join(r.dir, filepath.Base(username)+".json")
}

// Load reads a user's collection. A missing document is an empty
// collection; an undecodable one is reported as ErrMalformedStorage so the
// caller can recover with an empty collection. Records missing created_at
// or pinned are backfilled (created_at ← now, pinned ← false) and the
// repaired document is persisted immediately, so a second load is a no-op.
func (r *NoteFile) Load(username string) ([]models.Note, error) {
	data, err := os.ReadFile(r.userPath(username))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read notes for %q: %w", username, err)
	}

	var records []noteRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode notes for %q: %w", username, ErrMalformedStorage)
	}

	notes := make([]models.Note, 0, len(records))
	migrated := false
	// truncated to the stored RFC3339 precision, so the backfilled value
	// round-trips identically through Save
	now := time.Now().UTC().Truncate(time.Second)
	for _, rec := range records {
		n := models.Note{ID: rec.ID, Text: rec.Text}

		if rec.CreatedAt == "" {
			n.CreatedAt = now
			migrated = true
		} else if ts, perr := time.Parse(time.RFC3339, rec.CreatedAt); perr == nil {
			n.CreatedAt = ts
		} else {
			n.CreatedAt = now
			migrated = true
		}

		if rec.Pinned == nil {
			migrated = true
		} else {
			n.Pinned = *rec.Pinned
		}

		notes = append(notes, n)
	}

	if migrated {
		if err := r.Save(username, notes); err != nil {
			return nil, fmt.Errorf("persist migrated notes for %q: %w", username, err)
		}
	}
	return notes, nil
}

// Save overwrites the user's document with the full collection.
func (r *NoteFile) Save(username string, notes []models.Note) error {
	records := make([]noteRecord, 0, len(notes))
	for _, n := range notes {
		pinned := n.Pinned
		records = append(records, noteRecord{
			ID:        n.ID,
			Text:      n.Text,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
			Pinned:    &pinned,
		})
	}
	return writeDocument(r.userPath(username), records)
}
