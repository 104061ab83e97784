package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harukimz/timetable-share/internal/model"
)

func TestRelationshipLabel(t *testing.T) {
	const viewer = uint64(1)

	assert.Equal(t, "none", relationshipLabel(model.Friend{}, false, viewer))

	accepted := model.Friend{UserID: 2, FriendUserID: viewer, Status: model.FriendStatusAccepted}
	assert.Equal(t, "friends", relationshipLabel(accepted, true, viewer))

	sent := model.Friend{UserID: viewer, FriendUserID: 2, Status: model.FriendStatusPending}
	assert.Equal(t, "sent", relationshipLabel(sent, true, viewer))

	received := model.Friend{UserID: 2, FriendUserID: viewer, Status: model.FriendStatusPending}
	assert.Equal(t, "received", relationshipLabel(received, true, viewer))
}
