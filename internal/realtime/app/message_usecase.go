package app

import (
	"context"
	"strings"

	"github.com/Saieshwar5/sangam-sub001/internal/realtime/domain"
	"github.com/Saieshwar5/sangam-sub001/internal/realtime/repository"
	errprocess "github.com/Saieshwar5/sangam-sub001/pkg/err"

	"github.com/google/uuid"
)

const defaultPageSize = 50

// MessageUseCase durable CRUD for direct messages plus the read-state
// transitions
type MessageUseCase struct {
	msgRepo repository.MessageRepository
}

// NewMessageUseCase create MessageUseCase
func NewMessageUseCase(msgRepo repository.MessageRepository) *MessageUseCase {
	return &MessageUseCase{msgRepo: msgRepo}
}

// Send validate and persist one direct message with status sent
func (uc *MessageUseCase) Send(ctx context.Context, senderID, receiverID, content string) (*domain.Message, error) {
	if senderID == "" || receiverID == "" {
		return nil, errprocess.Validation("sender and receiver are required")
	}
	if !validUserID(senderID) || !validUserID(receiverID) {
		return nil, errprocess.Validation("malformed user id")
	}
	if senderID == receiverID {
		return nil, errprocess.Validation("cannot send a message to yourself")
	}
	if strings.TrimSpace(content) == "" {
		return nil, errprocess.Validation("content must not be empty")
	}

	msg := &domain.Message{
		ID:         uuid.New().String(),
		RoomID:     domain.RoomID(senderID, receiverID),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Status:     domain.StatusSent,
		CreatedAt:  domain.Now(),
	}

	if err := uc.msgRepo.Insert(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListRoom page through a room in conversation order
func (uc *MessageUseCase) ListRoom(ctx context.Context, roomID, callerID, cursorToken string, limit int64) (*domain.Page, error) {
	if !isParticipant(roomID, callerID) {
		return nil, errprocess.Forbidden("not a participant of this room")
	}

	cursor, err := domain.DecodeCursor(cursorToken)
	if err != nil {
		return nil, errprocess.Validation("malformed page cursor")
	}
	if limit <= 0 {
		limit = defaultPageSize
	}

	messages, err := uc.msgRepo.FindByRoom(ctx, roomID, cursor, limit)
	if err != nil {
		return nil, err
	}

	page := &domain.Page{Messages: messages}
	if int64(len(messages)) == limit {
		page.NextCursor = domain.NewCursorAfter(&messages[len(messages)-1])
	}
	return page, nil
}

// ListBetween page through the conversation of an unordered user pair
func (uc *MessageUseCase) ListBetween(ctx context.Context, userA, userB, callerID, cursorToken string, limit int64) (*domain.Page, error) {
	if userA == "" || userB == "" {
		return nil, errprocess.Validation("both users are required")
	}
	if !validUserID(userA) || !validUserID(userB) {
		return nil, errprocess.Validation("malformed user id")
	}
	return uc.ListRoom(ctx, domain.RoomID(userA, userB), callerID, cursorToken, limit)
}

// MarkRead move the given messages to read for this reader. Rows the
// reader does not own as receiver are skipped, not failed; marking an
// already read message again is a no-op.
func (uc *MessageUseCase) MarkRead(ctx context.Context, messageIDs []string, readerID string) (int64, error) {
	if len(messageIDs) == 0 {
		return 0, nil
	}
	return uc.msgRepo.MarkRead(ctx, messageIDs, readerID)
}

// MarkSenderRead mark everything one sender sent to the reader as
// read, used when a conversation is opened
func (uc *MessageUseCase) MarkSenderRead(ctx context.Context, readerID, senderID string) (int64, error) {
	if senderID == "" {
		return 0, errprocess.Validation("sender is required")
	}
	return uc.msgRepo.MarkSenderRead(ctx, readerID, senderID)
}

// UnreadSummary unread counts grouped by sender, for badge counts
func (uc *MessageUseCase) UnreadSummary(ctx context.Context, receiverID string) ([]domain.SenderUnread, error) {
	return uc.msgRepo.UnreadSummary(ctx, receiverID)
}

// UnreadCount total unread across all senders
func (uc *MessageUseCase) UnreadCount(ctx context.Context, receiverID string) (int64, error) {
	return uc.msgRepo.CountUnread(ctx, receiverID)
}

// Delete soft-delete a message, sender only
func (uc *MessageUseCase) Delete(ctx context.Context, messageID, requesterID string) error {
	return uc.msgRepo.SoftDelete(ctx, messageID, requesterID)
}

// validUserID an id containing the room separator would make distinct
// user pairs derive the same room, so it is rejected before any room
// is computed
func validUserID(id string) bool {
	return !strings.Contains(id, domain.RoomSeparator)
}

// isParticipant check the caller against the two ids a room is
// derived from
func isParticipant(roomID, userID string) bool {
	parts := strings.SplitN(roomID, domain.RoomSeparator, 2)
	return len(parts) == 2 && (parts[0] == userID || parts[1] == userID)
}
