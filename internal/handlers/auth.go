package handlers

import (
	"errors"
	"net/http"

	"pinboard/internal/service"

	"github.com/gin-gonic/gin"
)

// startSession issues a session token for the user and sets the cookie.
func (h *Handler) startSession(c *gin.Context, username string) error {
	token, err := h.services.IssueSession(username)
	if err != nil {
		return err
	}
	c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
	return nil
}

func (h *Handler) showRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Error": "", "Username": ""})
}

// register creates the credential and starts a session. A duplicate or
// invalid username re-renders the form with an inline error (HTTP 200,
// not a redirect).
func (h *Handler) register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	registered, err := h.services.Register(username, password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("register_failed", "username", username, "err", err)
		}
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Error":    formError(err),
			"Username": username,
		})
		return
	}

	if err := h.startSession(c, registered); err != nil {
		h.sessionFailure(c, "register.html", registered, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) showLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Error": "", "Username": ""})
}

// login verifies the credential and starts a session; a mismatch
// re-renders the form with an inline error.
func (h *Handler) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	authenticated, err := h.services.Authenticate(username, password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("login_failed", "username", username, "err", err)
		}
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error":    formError(err),
			"Username": username,
		})
		return
	}

	if err := h.startSession(c, authenticated); err != nil {
		h.sessionFailure(c, "login.html", authenticated, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// logout clears the session unconditionally and redirects to login.
func (h *Handler) logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

// formError maps domain errors to user-facing form messages; anything
// unexpected degrades to a generic message rather than a server fault.
func formError(err error) string {
	switch {
	case errors.Is(err, service.ErrDuplicateUser),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrEmptyPassword),
		errors.Is(err, service.ErrInvalidCredentials):
		return err.Error()
	default:
		return "something went wrong, please try again"
	}
}

func (h *Handler) sessionFailure(c *gin.Context, view, username string, err error) {
	if h.log != nil {
		h.log.Errorw("session_issue_failed", "username", username, "err", err)
	}
	c.HTML(http.StatusOK, view, gin.H{
		"Error":    "something went wrong, please try again",
		"Username": username,
	})
}
