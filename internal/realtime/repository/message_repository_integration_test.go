package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/Saieshwar5/sangam-sub001/internal/realtime/domain"
	"github.com/Saieshwar5/sangam-sub001/pkg/database"
	errprocess "github.com/Saieshwar5/sangam-sub001/pkg/err"
	"github.com/Saieshwar5/sangam-sub001/pkg/logger"
	testtool "github.com/Saieshwar5/sangam-sub001/pkg/test_tool"

	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	mongoContainer testcontainers.Container
	testMongo      *database.MongoDB
	msgRepo        MessageRepository
)

func TestMain(m *testing.M) {
	ctx := context.Background()
	logger.SetNewNop()

	var err error
	mongoContainer, mongoHost, mongoPort, err := testtool.SetupContainer(ctx, testcontainers.ContainerRequest{
		Image:        "mongo:latest",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp"),
	})
	if err != nil {
		log.Fatalf("failed to start MongoDB container: %v", err)
	}

	testMongo, err = database.NewMongoDB(ctx, database.Connection{
		ConnectStr:    fmt.Sprintf("mongodb://%s:%s", mongoHost, mongoPort),
		RetryCount:    5,
		RetryInterval: 5,
	}, "test_realtime_db")
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}

	if err := EnsureMessageIndexes(ctx, testMongo.Database); err != nil {
		log.Fatalf("failed to create message indexes: %v", err)
	}
	msgRepo = NewMongoMessageRepository(testMongo.Database)

	code := m.Run()

	testMongo.Close(ctx)
	_ = mongoContainer.Terminate(ctx)
	os.Exit(code)
}

func seedMessage(t *testing.T, id, sender, receiver string, createdAt int64, status domain.MessageStatus) *domain.Message {
	t.Helper()
	msg := &domain.Message{
		ID:         id,
		RoomID:     domain.RoomID(sender, receiver),
		SenderID:   sender,
		ReceiverID: receiver,
		Content:    "content of " + id,
		Status:     status,
		CreatedAt:  createdAt,
	}
	assert.NoError(t, msgRepo.Insert(context.Background(), msg))
	return msg
}

func TestMongoMessageRepository_InsertAndFind(t *testing.T) {
	ctx := context.Background()

	seedMessage(t, "find-1", "alice", "bob", 100, domain.StatusSent)

	got, err := msgRepo.FindByID(ctx, "find-1")
	assert.NoError(t, err)
	assert.Equal(t, "alice", got.SenderID)
	assert.Equal(t, domain.StatusSent, got.Status)

	_, err = msgRepo.FindByID(ctx, "no-such-id")
	assert.Equal(t, errprocess.KindNotFound, errprocess.KindOf(err))
}

func TestMongoMessageRepository_FindByRoomPagination(t *testing.T) {
	ctx := context.Background()
	roomID := domain.RoomID("page-a", "page-b")

	// two messages share a timestamp, the id breaks the tie
	seedMessage(t, "page-1", "page-a", "page-b", 10, domain.StatusSent)
	seedMessage(t, "page-2", "page-b", "page-a", 20, domain.StatusSent)
	seedMessage(t, "page-3", "page-a", "page-b", 20, domain.StatusSent)
	seedMessage(t, "page-4", "page-a", "page-b", 30, domain.StatusSent)

	first, err := msgRepo.FindByRoom(ctx, roomID, nil, 2)
	assert.NoError(t, err)
	assert.Equal(t, []string{"page-1", "page-2"}, idsOf(first))

	cursor := domain.NewCursorAfter(&first[len(first)-1])
	after, err := domain.DecodeCursor(cursor)
	assert.NoError(t, err)

	second, err := msgRepo.FindByRoom(ctx, roomID, after, 2)
	assert.NoError(t, err)
	assert.Equal(t, []string{"page-3", "page-4"}, idsOf(second))

	// a message arriving mid-pagination lands after the cursor and is
	// picked up by the next page instead of shifting earlier ones
	seedMessage(t, "page-5", "page-b", "page-a", 40, domain.StatusSent)
	third, err := msgRepo.FindByRoom(ctx, roomID, after, 10)
	assert.NoError(t, err)
	assert.Equal(t, []string{"page-3", "page-4", "page-5"}, idsOf(third))
}

func TestMongoMessageRepository_MarkRead(t *testing.T) {
	ctx := context.Background()

	seedMessage(t, "read-1", "alice", "reader", 10, domain.StatusSent)
	seedMessage(t, "read-2", "alice", "reader", 20, domain.StatusDelivered)
	seedMessage(t, "read-3", "alice", "someone-else", 30, domain.StatusSent)

	// the foreign row is skipped, not failed
	n, err := msgRepo.MarkRead(ctx, []string{"read-1", "read-2", "read-3"}, "reader")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := msgRepo.FindByID(ctx, "read-3")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusSent, got.Status)

	// marking again is a no-op
	n, err = msgRepo.MarkRead(ctx, []string{"read-1", "read-2"}, "reader")
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestMongoMessageRepository_MarkSenderRead(t *testing.T) {
	ctx := context.Background()

	seedMessage(t, "sr-1", "carol", "dave", 10, domain.StatusSent)
	seedMessage(t, "sr-2", "carol", "dave", 20, domain.StatusDelivered)
	seedMessage(t, "sr-3", "erin", "dave", 30, domain.StatusSent)

	n, err := msgRepo.MarkSenderRead(ctx, "dave", "carol")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := msgRepo.FindByID(ctx, "sr-3")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusSent, got.Status)
}

func TestMongoMessageRepository_MarkDelivered(t *testing.T) {
	ctx := context.Background()

	seedMessage(t, "dlv-1", "alice", "frank", 10, domain.StatusSent)
	seedMessage(t, "dlv-2", "alice", "frank", 20, domain.StatusRead)

	assert.NoError(t, msgRepo.MarkDelivered(ctx, "dlv-1"))
	got, err := msgRepo.FindByID(ctx, "dlv-1")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, got.Status)

	// a read message never moves backwards
	assert.NoError(t, msgRepo.MarkDelivered(ctx, "dlv-2"))
	got, err = msgRepo.FindByID(ctx, "dlv-2")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusRead, got.Status)
}

func TestMongoMessageRepository_Unread(t *testing.T) {
	ctx := context.Background()

	seedMessage(t, "un-1", "grace", "henry", 10, domain.StatusSent)
	seedMessage(t, "un-2", "grace", "henry", 20, domain.StatusDelivered)
	seedMessage(t, "un-3", "ivan", "henry", 30, domain.StatusSent)
	seedMessage(t, "un-4", "ivan", "henry", 40, domain.StatusRead)

	total, err := msgRepo.CountUnread(ctx, "henry")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)

	summary, err := msgRepo.UnreadSummary(ctx, "henry")
	assert.NoError(t, err)
	assert.Equal(t, []domain.SenderUnread{
		{SenderID: "grace", UnreadCount: 2},
		{SenderID: "ivan", UnreadCount: 1},
	}, summary)

	// a soft-deleted message drops out of the counts
	assert.NoError(t, msgRepo.SoftDelete(ctx, "un-1", "grace"))
	total, err = msgRepo.CountUnread(ctx, "henry")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestMongoMessageRepository_SoftDelete(t *testing.T) {
	ctx := context.Background()

	seedMessage(t, "del-1", "alice", "bob", 10, domain.StatusSent)

	err := msgRepo.SoftDelete(ctx, "del-1", "mallory")
	assert.Equal(t, errprocess.KindForbidden, errprocess.KindOf(err))

	assert.NoError(t, msgRepo.SoftDelete(ctx, "del-1", "alice"))
	got, err := msgRepo.FindByID(ctx, "del-1")
	assert.NoError(t, err)
	assert.True(t, got.Deleted)

	err = msgRepo.SoftDelete(ctx, "missing", "alice")
	assert.Equal(t, errprocess.KindNotFound, errprocess.KindOf(err))
}

func idsOf(messages []domain.Message) []string {
	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	return ids
}
