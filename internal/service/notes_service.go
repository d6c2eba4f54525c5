package service

import (
	"errors"
	"sort"
	"time"

	"pinboard/internal/logger"
	"pinboard/internal/models"
	"pinboard/internal/repository"
)

// NotesService implements the per-user note operations on top of a
// full-collection store. An empty username means no session is active:
// reads return an empty collection and mutations silently no-op, so
// handlers never have to re-check authentication before calling in.
type NotesService struct {
	notes repository.Notes
	log   *logger.Logger
}

func NewNotesService(notes repository.Notes, log *logger.Logger) *NotesService {
	return &NotesService{notes: notes, log: log}
}

// NextID assigns ids as max+1, starting at 1 for an empty collection.
// Deleting the note with the current maximum frees that id for reuse by
// the next creation; gaps below the maximum are never filled.
func NextID(notes []models.Note) int {
	maxID := 0
	for _, n := range notes {
		if n.ID > maxID {
			maxID = n.ID
		}
	}
	return maxID + 1
}

// load fetches the user's collection, degrading a malformed document to
// an empty collection (the broken content is dropped on the next save).
func (s *NotesService) load(username string) ([]models.Note, error) {
	if username == "" {
		return nil, nil
	}
	notes, err := s.notes.Load(username)
	if err != nil {
		if errors.Is(err, repository.ErrMalformedStorage) {
			if s.log != nil {
				s.log.Warnw("notes_document_malformed", "username", username, "err", err)
			}
			return nil, nil
		}
		return nil, err
	}
	return notes, nil
}

func (s *NotesService) save(username string, notes []models.Note) error {
	if username == "" {
		return nil
	}
	return s.notes.Save(username, notes)
}

// List returns the user's notes with the pinned group first, each group
// ordered by id descending (newest first, since ids only grow).
func (s *NotesService) List(username string) ([]models.Note, error) {
	notes, err := s.load(username)
	if err != nil {
		return nil, err
	}
	sort.Slice(notes, func(i, j int) bool {
		if notes[i].Pinned != notes[j].Pinned {
			return notes[i].Pinned
		}
		return notes[i].ID > notes[j].ID
	})
	return notes, nil
}

// Get fetches a single note by id. ok=false if it does not exist.
func (s *NotesService) Get(username string, id int) (models.Note, bool, error) {
	notes, err := s.load(username)
	if err != nil {
		return models.Note{}, false, err
	}
	for _, n := range notes {
		if n.ID == id {
			return n, true, nil
		}
	}
	return models.Note{}, false, nil
}

// Create appends a new note with a fresh id and the current timestamp.
// Empty text is ignored.
func (s *NotesService) Create(username, text string) error {
	if username == "" || text == "" {
		return nil
	}
	notes, err := s.load(username)
	if err != nil {
		return err
	}
	// second precision, matching what the store persists
	notes = append(notes, models.Note{
		ID:        NextID(notes),
		Text:      text,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	})
	return s.save(username, notes)
}

// Edit overwrites the text of an existing note, leaving id, created_at
// and pinned untouched. Missing id is a no-op.
func (s *NotesService) Edit(username string, id int, text string) error {
	return s.update(username, id, func(n *models.Note) {
		n.Text = text
	})
}

// TogglePin flips the pinned flag. Missing id is a no-op.
func (s *NotesService) TogglePin(username string, id int) error {
	return s.update(username, id, func(n *models.Note) {
		n.Pinned = !n.Pinned
	})
}

// Delete removes the note with the given id; absent ids are a no-op.
func (s *NotesService) Delete(username string, id int) error {
	notes, err := s.load(username)
	if err != nil {
		return err
	}
	kept := notes[:0]
	removed := false
	for _, n := range notes {
		if n.ID == id {
			removed = true
			continue
		}
		kept = append(kept, n)
	}
	if !removed {
		return nil
	}
	return s.save(username, kept)
}

// update applies fn to the note with the given id and persists the whole
// collection; if the id is absent nothing is written.
func (s *NotesService) update(username string, id int, fn func(*models.Note)) error {
	notes, err := s.load(username)
	if err != nil {
		return err
	}
	for i := range notes {
		if notes[i].ID == id {
			fn(&notes[i])
			return s.save(username, notes)
		}
	}
	return nil
}
