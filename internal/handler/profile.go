package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harukimz/timetable-share/internal/middleware"
	"github.com/harukimz/timetable-share/internal/model"
	"github.com/harukimz/timetable-share/internal/repository"
)

// ProfileHandler serves profile reads and updates. Visibility: owners and
// accepted friends always see the full profile, everyone else only when
// the profile is public.
type ProfileHandler struct {
	Profiles *repository.ProfileRepo
	Users    *repository.UserRepo
	Friends  *repository.FriendRepo
}

type updateProfileReq struct {
	Bio        *string `json:"bio"`
	Grade      *string `json:"grade"`
	Department *string `json:"department"`
	Hobbies    *string `json:"hobbies"`
	AvatarURL  *string `json:"avatar_url"`
	IsPublic   *bool   `json:"is_public"`
}

type profileView struct {
	UserID     uint64    `json:"user_id"`
	Username   string    `json:"username"`
	Bio        string    `json:"bio"`
	Grade      string    `json:"grade"`
	Department string    `json:"department"`
	Hobbies    string    `json:"hobbies"`
	AvatarURL  string    `json:"avatar_url"`
	IsPublic   bool      `json:"is_public"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// restrictedProfileView is what non-friends see on a private profile.
type restrictedProfileView struct {
	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	IsPublic  bool   `json:"is_public"`
}

func newProfileView(p model.Profile, username string) profileView {
	return profileView{
		UserID:     p.UserID,
		Username:   username,
		Bio:        p.Bio,
		Grade:      p.Grade,
		Department: p.Department,
		Hobbies:    p.Hobbies,
		AvatarURL:  p.AvatarURL,
		IsPublic:   p.IsPublic,
		UpdatedAt:  p.UpdatedAt,
	}
}

// GetMine returns the caller's own profile, creating it on first access.
func (h *ProfileHandler) GetMine(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	userID := middleware.CurrentUserID(c)

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	profile, err := h.Profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": newProfileView(profile, user.Username)})
}

// UpdateMine applies a partial update to the caller's profile. Absent
// fields stay untouched.
func (h *ProfileHandler) UpdateMine(c echo.Context) error {
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	userID := middleware.CurrentUserID(c)

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	profile, err := h.Profiles.UpdatePartial(ctx, userID, repository.ProfileUpdate{
		Bio:        req.Bio,
		Grade:      req.Grade,
		Department: req.Department,
		Hobbies:    req.Hobbies,
		AvatarURL:  req.AvatarURL,
		IsPublic:   req.IsPublic,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "profile updated",
		"profile": newProfileView(profile, user.Username),
	})
}

// GetByUser returns another user's profile, restricted when the profile is
// private and the caller is not an accepted friend.
func (h *ProfileHandler) GetByUser(c echo.Context) error {
	targetID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	userID := middleware.CurrentUserID(c)

	target, err := h.Users.GetByID(ctx, targetID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	profile, err := h.Profiles.GetByUserID(ctx, targetID)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusOK, echo.Map{
			"profile": restrictedProfileView{UserID: target.ID, Username: target.Username, IsPublic: true},
			"message": "this user has not set up a profile yet",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if targetID != userID && !profile.IsPublic {
		friends, err := h.Friends.AreFriends(ctx, userID, targetID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if !friends {
			return c.JSON(http.StatusOK, echo.Map{
				"profile": restrictedProfileView{
					UserID:    target.ID,
					Username:  target.Username,
					AvatarURL: profile.AvatarURL,
					IsPublic:  false,
				},
				"message": "this profile is private",
			})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": newProfileView(profile, target.Username)})
}

// UploadAvatar assigns a generated avatar image derived from the username.
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	userID := middleware.CurrentUserID(c)

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if _, err := h.Profiles.GetOrCreate(ctx, userID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	avatarURL := fmt.Sprintf(
		"https://ui-avatars.com/api/?name=%s&background=random&size=256",
		url.QueryEscape(user.Username),
	)
	profile, err := h.Profiles.SetAvatar(ctx, userID, avatarURL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "avatar updated",
		"avatar_url": profile.AvatarURL,
	})
}
