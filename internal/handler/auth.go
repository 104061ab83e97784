package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/harukimz/timetable-share/internal/config"
	"github.com/harukimz/timetable-share/internal/middleware"
	"github.com/harukimz/timetable-share/internal/repository"
	"github.com/harukimz/timetable-share/internal/session"
	"github.com/harukimz/timetable-share/internal/utils"
)

// AuthHandler bundles dependencies for the identity endpoints: account
// creation, credential check and session lifecycle.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Sessions session.Store
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, s session.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Sessions: s}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// setSessionCookie hands the opaque session id to the client. The cookie is
// HttpOnly so scripts never see it; the id itself carries no information.
func (h *AuthHandler) setSessionCookie(c echo.Context, id string) {
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   h.Cfg.SessionTTLMin * 60,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// Register creates a user and opens a session immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username, email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Username, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		switch err {
		case repository.ErrUsernameExists:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "username already taken"})
		case repository.ErrEmailExists:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already taken"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	sid, err := h.Sessions.Create(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "open session failed"})
	}
	h.setSessionCookie(c, sid)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "registered",
		"user":    newUserView(u),
	})
}

// Login checks credentials and opens a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid username or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid username or password"})
	}

	sid, err := h.Sessions.Create(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "open session failed"})
	}
	h.setSessionCookie(c, sid)

	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged in",
		"user":    newUserView(u),
	})
}

// Logout destroys the session if one is presented. It never fails on a
// missing or unknown cookie; logging out twice is fine.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
		defer cancel()
		_ = h.Sessions.Destroy(ctx, cookie.Value)
	}
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me resolves the session to the full user record.
func (h *AuthHandler) Me(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByID(ctx, middleware.CurrentUserID(c))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": newUserView(u)})
}
