package handlers

import (
	"github.com/gin-gonic/gin"
)

const (
	// sessionCookie carries the signed session token. No Max-Age: it
	// lives as long as the browser session, like a classic form login.
	sessionCookie = "pinboard_session"

	contextUserKey = "username"
)

// sessionMiddleware resolves the session cookie into an identity on the
// request context. It never aborts: anonymous requests pass through, and
// each handler (or the store's own guard) decides what that means.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	token, err := c.Cookie(sessionCookie)
	if err == nil && token != "" {
		username, perr := h.services.ParseSession(token)
		if perr == nil {
			c.Set(contextUserKey, username)
		} else if h.log != nil {
			h.log.Debugw("session_cookie_rejected", "err", perr)
		}
	}
	c.Next()
}

// currentUser returns the authenticated username, or "" when anonymous.
func currentUser(c *gin.Context) string {
	return c.GetString(contextUserKey)
}
