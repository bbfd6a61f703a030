package app

import (
	"github.com/Saieshwar5/sangam-sub001/internal/realtime/domain"
	"github.com/Saieshwar5/sangam-sub001/pkg/logger"

	"go.uber.org/zap"
)

// EventPusher what the delivery and notification usecases need from
// the router. Push is best-effort: failures are logged, never returned.
type EventPusher interface {
	SendToUser(userID string, ev domain.Event) int
	SendToUserExcept(userID, exceptConnID string, ev domain.Event) int
	BroadcastToGroup(groupID string, ev domain.Event) int
}

// ChannelRouter fans events out to user and group channels. It keeps
// no state of its own; presence and subscriptions live in the registry.
type ChannelRouter struct {
	registry *Registry
}

// NewChannelRouter create a ChannelRouter over the presence registry
func NewChannelRouter(registry *Registry) *ChannelRouter {
	return &ChannelRouter{registry: registry}
}

// SendToUser push an event to every live connection of a user. Zero
// connections is the normal offline case, not an error; the store
// stays the source of truth and the client resyncs over REST.
func (r *ChannelRouter) SendToUser(userID string, ev domain.Event) int {
	return r.SendToUserExcept(userID, "", ev)
}

// SendToUserExcept same as SendToUser but skips one connection, used
// to keep the originating device from echoing to itself
func (r *ChannelRouter) SendToUserExcept(userID, exceptConnID string, ev domain.Event) int {
	data, err := ev.Encode()
	if err != nil {
		logger.Log.Error("encode event failed",
			zap.String("event", string(ev.Type)), zap.Error(err))
		return 0
	}

	delivered := 0
	for _, conn := range r.registry.ConnectionsOf(userID) {
		if exceptConnID != "" && conn.Info.ID == exceptConnID {
			continue
		}
		if conn.Enqueue(data) {
			delivered++
		}
	}
	return delivered
}

// BroadcastToGroup push an event to every connection subscribed to the
// group's channel
func (r *ChannelRouter) BroadcastToGroup(groupID string, ev domain.Event) int {
	data, err := ev.Encode()
	if err != nil {
		logger.Log.Error("encode event failed",
			zap.String("event", string(ev.Type)), zap.Error(err))
		return 0
	}

	delivered := 0
	for _, conn := range r.registry.GroupConnections(groupID) {
		if conn.Enqueue(data) {
			delivered++
		}
	}
	return delivered
}
