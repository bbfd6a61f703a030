package app

import (
	"context"

	"github.com/Saieshwar5/sangam-sub001/internal/realtime/domain"
	"github.com/Saieshwar5/sangam-sub001/internal/realtime/repository"
	"github.com/Saieshwar5/sangam-sub001/pkg/logger"

	"go.uber.org/zap"
)

// DeliveryUseCase sequences "durable write, then best-effort push" for
// every message-producing action. Both the REST handler and the
// websocket handler go through Deliver.
type DeliveryUseCase struct {
	messageUC *MessageUseCase
	msgRepo   repository.MessageRepository
	router    EventPusher
}

// NewDeliveryUseCase create DeliveryUseCase
func NewDeliveryUseCase(messageUC *MessageUseCase, msgRepo repository.MessageRepository, router EventPusher) *DeliveryUseCase {
	return &DeliveryUseCase{
		messageUC: messageUC,
		msgRepo:   msgRepo,
		router:    router,
	}
}

// Deliver persist the message, then push to whoever is connected.
// The push only ever runs after the store call returned successfully;
// a store failure aborts the whole operation and nothing is pushed.
// Push outcome never changes the returned result: the caller's
// success is tied to durability alone. originConnID identifies the
// device the action came from so it is skipped on the sender echo;
// empty for REST calls.
func (uc *DeliveryUseCase) Deliver(ctx context.Context, senderID, receiverID, content, originConnID string) (*domain.Message, error) {
	msg, err := uc.messageUC.Send(ctx, senderID, receiverID, content)
	if err != nil {
		return nil, err
	}

	if delivered := uc.router.SendToUser(receiverID, domain.NewMessageEvent(msg)); delivered > 0 {
		// receiver was online, record the delivered transition; a
		// failure here only costs the status hint, the message itself
		// is already durable
		if err := uc.msgRepo.MarkDelivered(ctx, msg.ID); err != nil {
			logger.Log.Warn("mark delivered failed",
				zap.String("messageID", msg.ID), zap.Error(err))
		}
	}

	// keep the sender's other devices in sync without polling
	uc.router.SendToUserExcept(senderID, originConnID, domain.MessageSentEvent(msg))

	return msg, nil
}
