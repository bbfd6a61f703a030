package app

import (
	"github.com/Saieshwar5/sangam-sub001/internal/realtime/domain"
	"github.com/Saieshwar5/sangam-sub001/pkg/logger"

	"go.uber.org/zap"
)

// NotifyUseCase relays group-join lifecycle events onto live channels.
// It owns no state and no persistence; the membership collaborator has
// already committed the transition before either method is called, so
// a missed push is recovered from its records, never redelivered here.
type NotifyUseCase struct {
	router EventPusher
}

// NewNotifyUseCase create NotifyUseCase
func NewNotifyUseCase(router EventPusher) *NotifyUseCase {
	return &NotifyUseCase{router: router}
}

// NotifyJoinRequested tell the group's channel about a new pending
// request so connected authorities see it immediately
func (uc *NotifyUseCase) NotifyJoinRequested(groupID, requesterID, requestID string) {
	ev := domain.Event{
		Type: domain.EventNewJoinRequest,
		JoinRequest: &domain.JoinRequestEvent{
			GroupID:     groupID,
			RequesterID: requesterID,
			RequestID:   requestID,
			Timestamp:   domain.Now(),
		},
	}
	delivered := uc.router.BroadcastToGroup(groupID, ev)
	logger.Log.Debug("join request broadcast",
		zap.String("groupID", groupID),
		zap.String("requestID", requestID),
		zap.Int("delivered", delivered))
}

// NotifyJoinAccepted tell the requester their request was accepted.
// Unicast only; an offline requester sees the membership on next load.
func (uc *NotifyUseCase) NotifyJoinAccepted(groupID, groupName, requesterID, requestID string) {
	ev := domain.Event{
		Type: domain.EventJoinRequestAccepted,
		JoinAccepted: &domain.JoinAcceptedEvent{
			GroupID:   groupID,
			GroupName: groupName,
			RequestID: requestID,
			Timestamp: domain.Now(),
		},
	}
	delivered := uc.router.SendToUser(requesterID, ev)
	logger.Log.Debug("join accepted notify",
		zap.String("groupID", groupID),
		zap.String("requesterID", requesterID),
		zap.Int("delivered", delivered))
}
