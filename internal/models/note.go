package models

import "time"

// Note is a single text note owned by one user.
type Note struct {
	ID        int       `json:"id"`         // unique within the owner's collection
	Text      string    `json:"text"`       // user-supplied content
	CreatedAt time.Time `json:"created_at"` // ISO-8601 on disk
	Pinned    bool      `json:"pinned"`     // pinned notes sort ahead of the rest
}
