package app

import (
	"encoding/json"
	"testing"

	"github.com/Saieshwar5/sangam-sub001/internal/realtime/domain"

	"github.com/stretchr/testify/assert"
)

// drain read everything queued on a connection so far
func drain(c *Conn) [][]byte {
	var out [][]byte
	for {
		select {
		case data := <-c.Outbound():
			out = append(out, data)
		default:
			return out
		}
	}
}

func TestChannelRouter_SendToUser(t *testing.T) {
	registry := NewRegistry()
	router := NewChannelRouter(registry)

	phone := NewConn("c1", "bob")
	laptop := NewConn("c2", "bob")
	registry.Register(phone)
	registry.Register(laptop)
	registry.Register(NewConn("c3", "carol"))

	msg := &domain.Message{ID: "m1", SenderID: "alice", ReceiverID: "bob", Content: "hi"}
	delivered := router.SendToUser("bob", domain.NewMessageEvent(msg))
	assert.Equal(t, 2, delivered)

	queued := drain(phone)
	assert.Len(t, queued, 1)

	var ev domain.Event
	assert.NoError(t, json.Unmarshal(queued[0], &ev))
	assert.Equal(t, domain.EventNewMessage, ev.Type)
	assert.Equal(t, "m1", ev.Message.ID)

	assert.Len(t, drain(laptop), 1)
}

func TestChannelRouter_SendToUser_Offline(t *testing.T) {
	router := NewChannelRouter(NewRegistry())

	msg := &domain.Message{ID: "m1", SenderID: "alice", ReceiverID: "bob"}
	assert.Zero(t, router.SendToUser("bob", domain.NewMessageEvent(msg)))
}

func TestChannelRouter_SendToUserExcept(t *testing.T) {
	registry := NewRegistry()
	router := NewChannelRouter(registry)

	origin := NewConn("c1", "alice")
	other := NewConn("c2", "alice")
	registry.Register(origin)
	registry.Register(other)

	msg := &domain.Message{ID: "m1", SenderID: "alice", ReceiverID: "bob"}
	delivered := router.SendToUserExcept("alice", "c1", domain.MessageSentEvent(msg))
	assert.Equal(t, 1, delivered)

	// the originating device does not hear its own echo
	assert.Empty(t, drain(origin))
	assert.Len(t, drain(other), 1)
}

func TestChannelRouter_BroadcastToGroup(t *testing.T) {
	registry := NewRegistry()
	router := NewChannelRouter(registry)

	member := NewConn("c1", "alice")
	admin := NewConn("c2", "bob")
	outsider := NewConn("c3", "carol")
	registry.Register(member)
	registry.Register(admin)
	registry.Register(outsider)
	registry.Subscribe("c1", "g1")
	registry.Subscribe("c2", "g1")

	ev := domain.Event{
		Type:        domain.EventNewJoinRequest,
		JoinRequest: &domain.JoinRequestEvent{GroupID: "g1", RequesterID: "dave", RequestID: "r1"},
	}
	delivered := router.BroadcastToGroup("g1", ev)
	assert.Equal(t, 2, delivered)

	assert.Len(t, drain(member), 1)
	assert.Len(t, drain(admin), 1)
	assert.Empty(t, drain(outsider))
}
