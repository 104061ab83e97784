package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukimz/timetable-share/internal/session"
)

func authedHandler(t *testing.T, wantUserID uint64) echo.HandlerFunc {
	return func(c echo.Context) error {
		assert.Equal(t, wantUserID, CurrentUserID(c))
		assert.NotEmpty(t, CurrentSessionID(c))
		return c.NoContent(http.StatusOK)
	}
}

func TestSessionAuthValidCookie(t *testing.T) {
	store := session.NewMemoryStore(30 * time.Minute)
	id, err := store.Create(context.Background(), 7)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: id})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = SessionAuth(store)(authedHandler(t, 7))(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionAuthMissingCookie(t *testing.T) {
	store := session.NewMemoryStore(30 * time.Minute)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := SessionAuth(store)(authedHandler(t, 0))(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"authentication required"}`, rec.Body.String())
}

func TestSessionAuthUnknownSession(t *testing.T) {
	store := session.NewMemoryStore(30 * time.Minute)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "deadbeef"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := SessionAuth(store)(authedHandler(t, 0))(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCurrentUserIDUnauthenticated(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, uint64(0), CurrentUserID(c))
	assert.Equal(t, "", CurrentSessionID(c))
}
