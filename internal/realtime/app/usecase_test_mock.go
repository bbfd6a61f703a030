package app

import (
	"context"

	"github.com/Saieshwar5/sangam-sub001/internal/realtime/domain"

	"github.com/stretchr/testify/mock"
)

// MockMessageRepository Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// Insert mock insert message
func (m *MockMessageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// FindByID mock find message by id
func (m *MockMessageRepository) FindByID(ctx context.Context, messageID string) (*domain.Message, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByRoom mock list room page
func (m *MockMessageRepository) FindByRoom(ctx context.Context, roomID string, after *domain.Cursor, limit int64) ([]domain.Message, error) {
	args := m.Called(ctx, roomID, after, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// MarkRead mock mark messages read
func (m *MockMessageRepository) MarkRead(ctx context.Context, messageIDs []string, readerID string) (int64, error) {
	args := m.Called(ctx, messageIDs, readerID)
	return args.Get(0).(int64), args.Error(1)
}

// MarkSenderRead mock mark a sender's messages read
func (m *MockMessageRepository) MarkSenderRead(ctx context.Context, readerID, senderID string) (int64, error) {
	args := m.Called(ctx, readerID, senderID)
	return args.Get(0).(int64), args.Error(1)
}

// MarkDelivered mock forward status to delivered
func (m *MockMessageRepository) MarkDelivered(ctx context.Context, messageID string) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

// UnreadSummary mock unread per sender
func (m *MockMessageRepository) UnreadSummary(ctx context.Context, receiverID string) ([]domain.SenderUnread, error) {
	args := m.Called(ctx, receiverID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.SenderUnread), args.Error(1)
	}
	return nil, args.Error(1)
}

// CountUnread mock total unread
func (m *MockMessageRepository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	args := m.Called(ctx, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

// SoftDelete mock soft delete
func (m *MockMessageRepository) SoftDelete(ctx context.Context, messageID, requesterID string) error {
	args := m.Called(ctx, messageID, requesterID)
	return args.Error(0)
}

// MockEventPusher Mock EventPusher
type MockEventPusher struct {
	mock.Mock
}

// SendToUser mock user channel push
func (m *MockEventPusher) SendToUser(userID string, ev domain.Event) int {
	args := m.Called(userID, ev)
	return args.Int(0)
}

// SendToUserExcept mock user channel push with one device skipped
func (m *MockEventPusher) SendToUserExcept(userID, exceptConnID string, ev domain.Event) int {
	args := m.Called(userID, exceptConnID, ev)
	return args.Int(0)
}

// BroadcastToGroup mock group channel push
func (m *MockEventPusher) BroadcastToGroup(groupID string, ev domain.Event) int {
	args := m.Called(groupID, ev)
	return args.Int(0)
}
