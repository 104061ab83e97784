// Package middleware contains reusable HTTP middleware: session-cookie
// authentication and redis-backed rate limiting.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/harukimz/timetable-share/internal/session"
)

// Context keys set by SessionAuth for downstream handlers.
const (
	ctxUserIDKey    = "user_id"
	ctxSessionIDKey = "session_id"
)

// SessionAuth returns an Echo middleware that resolves the session cookie
// against the server-side store and injects the authenticated user id into
// the request context. Handlers access it via CurrentUserID. Requests
// without a resolvable session are rejected with 401 before any handler
// runs; there is no ambient global user anywhere.
func SessionAuth(store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			userID, err := store.Resolve(c.Request().Context(), cookie.Value)
			if err == session.ErrNotFound {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session lookup failed"})
			}
			c.Set(ctxUserIDKey, userID)
			c.Set(ctxSessionIDKey, cookie.Value)
			return next(c)
		}
	}
}

// CurrentUserID returns the authenticated user id placed in the context by
// SessionAuth, or 0 when the request is unauthenticated.
func CurrentUserID(c echo.Context) uint64 {
	if v, ok := c.Get(ctxUserIDKey).(uint64); ok {
		return v
	}
	return 0
}

// CurrentSessionID returns the session id of the request, or "".
func CurrentSessionID(c echo.Context) string {
	if v, ok := c.Get(ctxSessionIDKey).(string); ok {
		return v
	}
	return ""
}
