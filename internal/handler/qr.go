package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/harukimz/timetable-share/internal/middleware"
	"github.com/harukimz/timetable-share/internal/qr"
	"github.com/harukimz/timetable-share/internal/repository"
)

// QRHandler serves QR code generation, the scan-to-add shortcut and
// payload parsing.
type QRHandler struct {
	Users   *repository.UserRepo
	Friends *FriendHandler
}

type parseQRReq struct {
	QRData string `json:"qr_data"`
}

// Generate returns the caller's add-friend QR code as a PNG data URI plus
// the raw payload for clients that render their own code.
func (h *QRHandler) Generate(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	user, err := h.Users.GetByID(ctx, middleware.CurrentUserID(c))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	payload := qr.BuildPayload(user.ID)
	dataURI, err := qr.DataURI(payload)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "qr generation failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"qr_code": dataURI,
		"qr_data": payload,
		"user_info": echo.Map{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

// AddFriend sends a friend request to the user identified by a scanned
// code. Same rules as a regular request; the target comes from the path.
func (h *QRHandler) AddFriend(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	target, code, msg := h.Friends.sendRequest(ctx, middleware.CurrentUserID(c), id)
	if code != 0 {
		return c.JSON(code, echo.Map{"error": msg})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "friend request sent",
		"user": echo.Map{
			"id":       target.ID,
			"username": target.Username,
		},
	})
}

// Parse validates a scanned payload and returns the referenced user so the
// client can confirm before sending a request.
func (h *QRHandler) Parse(c echo.Context) error {
	var req parseQRReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.QRData) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "qr_data is required"})
	}

	userID, err := qr.ParsePayload(req.QRData)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid QR code"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"type": "add_friend",
		"user_info": echo.Map{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}
