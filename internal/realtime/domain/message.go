package domain

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// MessageStatus definition message read state
type MessageStatus string

const (
	// StatusSent message persisted, receiver not yet reached
	StatusSent MessageStatus = "sent"
	// StatusDelivered message pushed to a live receiver connection
	StatusDelivered MessageStatus = "delivered"
	// StatusRead message read by the receiver
	StatusRead MessageStatus = "read"
)

var statusRank = map[MessageStatus]int{
	StatusSent:      0,
	StatusDelivered: 1,
	StatusRead:      2,
}

// CanTransition reports whether moving from s to next goes forward.
// Status only ever moves sent -> delivered -> read, never back.
func (s MessageStatus) CanTransition(next MessageStatus) bool {
	return statusRank[next] > statusRank[s]
}

// RoomSeparator joins the two participant ids of a direct room
const RoomSeparator = ":"

// RoomID derive the canonical room for an unordered pair of users.
// RoomID(a,b) == RoomID(b,a) so one conversation has exactly one room.
func RoomID(userA, userB string) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return userA + RoomSeparator + userB
}

// Message definition one direct message
type Message struct {
	ID         string        `bson:"_id" json:"message_id"`
	RoomID     string        `bson:"room_id" json:"room_id"`
	SenderID   string        `bson:"sender_id" json:"sender_id"`
	ReceiverID string        `bson:"receiver_id" json:"receiver_id"`
	Content    string        `bson:"content" json:"content"`
	Status     MessageStatus `bson:"status" json:"status"`
	Deleted    bool          `bson:"deleted" json:"deleted,omitempty"`
	CreatedAt  int64         `bson:"created_at" json:"created_at"`
}

// SenderUnread definition unread count from one sender
type SenderUnread struct {
	SenderID    string `bson:"_id" json:"sender_id"`
	UnreadCount int    `bson:"unread_count" json:"unread_count"`
}

// Cursor marks a position inside a room listing. Pages are keyed on
// (created_at, message_id) so concurrent inserts never shift pages that
// were already returned.
type Cursor struct {
	CreatedAt int64  `json:"created_at"`
	MessageID string `json:"message_id"`
}

// Encode serialize the cursor into an opaque page token
func (c Cursor) Encode() string {
	b, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeCursor parse a page token, empty token means first page
func DecodeCursor(token string) (*Cursor, error) {
	if strings.TrimSpace(token) == "" {
		return nil, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, err
	}
	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// NewCursorAfter next-page cursor for the last message of a page
func NewCursorAfter(m *Message) string {
	return Cursor{CreatedAt: m.CreatedAt, MessageID: m.ID}.Encode()
}

// Page one slice of a room listing in ascending (created_at, _id) order
type Page struct {
	Messages   []Message `json:"messages"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// Now timestamp helper, overridable in tests
var Now = func() int64 { return time.Now().Unix() }
