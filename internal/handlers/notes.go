package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// index lists the user's notes, pinned group first. Anonymous visitors
// are sent to the login form.
func (h *Handler) index(c *gin.Context) {
	user := currentUser(c)
	if user == "" {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	notes, err := h.services.Notes.List(user)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("list_notes_failed", "username", user, "err", err)
		}
		notes = nil
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"User":  user,
		"Notes": notes,
	})
}

// createNote appends a note and redirects back to the list, so a refresh
// never resubmits the form. Empty text and anonymous posts are silent
// no-ops that still redirect as success.
func (h *Handler) createNote(c *gin.Context) {
	user := currentUser(c)
	if err := h.services.Notes.Create(user, c.PostForm("text")); err != nil {
		if h.log != nil {
			h.log.Errorw("create_note_failed", "username", user, "err", err)
		}
	}
	c.Redirect(http.StatusFound, "/")
}

// noteID parses the :id path parameter. ok=false means the value was not
// an integer; callers treat that like a missing note.
func noteID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// showEdit renders the note's current text, or redirects to the list if
// the note does not exist.
func (h *Handler) showEdit(c *gin.Context) {
	user := currentUser(c)
	id, ok := noteID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	note, found, err := h.services.Notes.Get(user, id)
	if err != nil || !found {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "edit.html", gin.H{
		"User": user,
		"Note": note,
	})
}

// editNote overwrites the note's text; a missing id is a silent no-op.
func (h *Handler) editNote(c *gin.Context) {
	h.mutate(c, "edit_note_failed", func(user string, id int) error {
		return h.services.Notes.Edit(user, id, c.PostForm("text"))
	})
}

// togglePin flips the pinned flag; a missing id is a silent no-op.
func (h *Handler) togglePin(c *gin.Context) {
	h.mutate(c, "toggle_pin_failed", func(user string, id int) error {
		return h.services.Notes.TogglePin(user, id)
	})
}

// deleteNote removes the note; a missing id is a silent no-op.
func (h *Handler) deleteNote(c *gin.Context) {
	h.mutate(c, "delete_note_failed", func(user string, id int) error {
		return h.services.Notes.Delete(user, id)
	})
}

// mutate runs a note mutation and redirects to the list regardless of
// outcome. The store's own guard handles anonymous users, so there is no
// auth check here.
func (h *Handler) mutate(c *gin.Context, logEvent string, fn func(user string, id int) error) {
	user := currentUser(c)
	if id, ok := noteID(c); ok {
		if err := fn(user, id); err != nil && h.log != nil {
			h.log.Errorw(logEvent, "username", user, "id", id, "err", err)
		}
	}
	c.Redirect(http.StatusFound, "/")
}
