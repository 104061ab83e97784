// Package qr builds and parses the add-friend QR payload. The payload is a
// plain deep link carrying a user id, nothing more; it is not signed, so
// scanning one only ever results in a friend request the target can reject.
package qr

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Scheme is the deep-link prefix wrapped in every generated code.
const Scheme = "timetable-share://add-friend/"

// ErrInvalidPayload is returned when scanned data does not carry the
// add-friend scheme or a usable user id.
var ErrInvalidPayload = errors.New("invalid qr payload")

// BuildPayload returns the deep link for adding the given user.
func BuildPayload(userID uint64) string {
	return Scheme + strconv.FormatUint(userID, 10)
}

// ParsePayload extracts the user id from a scanned deep link.
func ParsePayload(data string) (uint64, error) {
	data = strings.TrimSpace(data)
	if !strings.HasPrefix(data, Scheme) {
		return 0, ErrInvalidPayload
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(data, Scheme), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidPayload
	}
	return id, nil
}

// DataURI renders the payload as a 256px PNG QR code and returns it as a
// base64 data URI ready for an <img> tag.
func DataURI(payload string) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.Low, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
