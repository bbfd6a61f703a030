package domain

import "encoding/json"

// EventType closed set of push event variants
type EventType string

const (
	// EventNewMessage pushed to the receiver of a direct message
	EventNewMessage EventType = "new_message"
	// EventMessageSent pushed to the sender's other live devices
	EventMessageSent EventType = "message_sent"
	// EventNewJoinRequest broadcast on a group channel
	EventNewJoinRequest EventType = "new_join_request"
	// EventJoinRequestAccepted pushed to the requester only
	EventJoinRequestAccepted EventType = "join_request_accepted"
)

// Event one typed push event. Exactly one payload field is set,
// matching Type; dispatch happens on Type, never on payload shape.
type Event struct {
	Type         EventType            `json:"event"`
	Message      *Message             `json:"message,omitempty"`
	JoinRequest  *JoinRequestEvent    `json:"join_request,omitempty"`
	JoinAccepted *JoinAcceptedEvent   `json:"join_accepted,omitempty"`
}

// JoinRequestEvent payload of EventNewJoinRequest
type JoinRequestEvent struct {
	GroupID     string `json:"group_id"`
	RequesterID string `json:"requester_id"`
	RequestID   string `json:"request_id"`
	Timestamp   int64  `json:"timestamp"`
}

// JoinAcceptedEvent payload of EventJoinRequestAccepted
type JoinAcceptedEvent struct {
	GroupID   string `json:"group_id"`
	GroupName string `json:"group_name"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
}

// NewMessageEvent build the receiver-side event for a persisted message
func NewMessageEvent(m *Message) Event {
	return Event{Type: EventNewMessage, Message: m}
}

// MessageSentEvent build the sender-side echo event
func MessageSentEvent(m *Message) Event {
	return Event{Type: EventMessageSent, Message: m}
}

// Encode serialize the event for the socket
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Action websocket request action
type Action string

const (
	// SendMessage websocket action send_message
	SendMessage Action = "send_message"
	// ReadMessage websocket action mark_read
	ReadMessage Action = "mark_read"
	// ReadSender websocket action mark_sender_read
	ReadSender Action = "mark_sender_read"
	// GetUnread websocket action get_unread
	GetUnread Action = "get_unread"
)

// WSRequest websocket Request
type WSRequest struct {
	Action     string   `json:"action"`
	ReceiverID string   `json:"receiver_id"`
	SenderID   string   `json:"sender_id"`
	Content    string   `json:"content"`
	MessageIDs []string `json:"message_ids"`
}

// WSResponse websocket Response to a client action
type WSResponse struct {
	Action  string                 `json:"action"`
	Success bool                   `json:"success"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	Error   string                 `json:"error,omitempty"`
}
