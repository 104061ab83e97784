package qr

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAndParseRoundTrip(t *testing.T) {
	payload := BuildPayload(42)
	assert.Equal(t, "timetable-share://add-friend/42", payload)

	id, err := ParsePayload(payload)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
}

func TestParsePayloadTrimsWhitespace(t *testing.T) {
	id, err := ParsePayload("  timetable-share://add-friend/7\n")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)
}

func TestParsePayloadRejectsGarbage(t *testing.T) {
	for _, data := range []string{
		"",
		"https://example.com/add-friend/42",
		"timetable-share://add-friend/",
		"timetable-share://add-friend/abc",
		"timetable-share://add-friend/0",
		"timetable-share://add-friend/-1",
		"add-friend/42",
	} {
		_, err := ParsePayload(data)
		assert.ErrorIs(t, err, ErrInvalidPayload, "payload %q", data)
	}
}

func TestDataURI(t *testing.T) {
	uri, err := DataURI(BuildPayload(1))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, raw[:4])
}
