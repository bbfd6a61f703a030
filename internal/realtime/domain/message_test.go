package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// room identity must not depend on argument order
func TestRoomID_Canonical(t *testing.T) {
	assert.Equal(t, RoomID("alice", "bob"), RoomID("bob", "alice"))
	assert.Equal(t, "alice:bob", RoomID("bob", "alice"))
	assert.NotEqual(t, RoomID("alice", "bob"), RoomID("alice", "carol"))
}

func TestMessageStatus_CanTransition(t *testing.T) {
	assert.True(t, StatusSent.CanTransition(StatusDelivered))
	assert.True(t, StatusSent.CanTransition(StatusRead))
	assert.True(t, StatusDelivered.CanTransition(StatusRead))

	// never backwards, never self
	assert.False(t, StatusRead.CanTransition(StatusDelivered))
	assert.False(t, StatusRead.CanTransition(StatusSent))
	assert.False(t, StatusDelivered.CanTransition(StatusSent))
	assert.False(t, StatusSent.CanTransition(StatusSent))
}

func TestCursor_EncodeDecode(t *testing.T) {
	c := Cursor{CreatedAt: 1700000000, MessageID: "msg-42"}

	decoded, err := DecodeCursor(c.Encode())
	assert.NoError(t, err)
	assert.Equal(t, c, *decoded)
}

func TestDecodeCursor_Empty(t *testing.T) {
	decoded, err := DecodeCursor("")
	assert.NoError(t, err)
	assert.Nil(t, decoded)

	decoded, err = DecodeCursor("   ")
	assert.NoError(t, err)
	assert.Nil(t, decoded)
}

func TestDecodeCursor_Malformed(t *testing.T) {
	_, err := DecodeCursor("%%%not-base64%%%")
	assert.Error(t, err)
}
