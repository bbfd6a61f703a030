package repository

import (
	"context"
	"fmt"

	"github.com/Saieshwar5/sangam-sub001/internal/realtime/domain"
	errprocess "github.com/Saieshwar5/sangam-sub001/pkg/err"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository durable direct-message store
type MessageRepository interface {
	Insert(ctx context.Context, msg *domain.Message) error
	FindByID(ctx context.Context, messageID string) (*domain.Message, error)
	// FindByRoom lists a room ascending by (created_at, _id), starting
	// strictly after the cursor when one is given.
	FindByRoom(ctx context.Context, roomID string, after *domain.Cursor, limit int64) ([]domain.Message, error)
	// MarkRead moves the given messages to read, but only rows owned by
	// readerID as receiver and not already read. Other ids are skipped.
	MarkRead(ctx context.Context, messageIDs []string, readerID string) (int64, error)
	MarkSenderRead(ctx context.Context, readerID, senderID string) (int64, error)
	MarkDelivered(ctx context.Context, messageID string) error
	UnreadSummary(ctx context.Context, receiverID string) ([]domain.SenderUnread, error)
	CountUnread(ctx context.Context, receiverID string) (int64, error)
	SoftDelete(ctx context.Context, messageID, requesterID string) error
}

type mongoMessageRepository struct {
	coll *mongo.Collection
}

// NewMongoMessageRepository create a MessageRepository on the messages collection
func NewMongoMessageRepository(db *mongo.Database) MessageRepository {
	return &mongoMessageRepository{
		coll: db.Collection("messages"),
	}
}

// EnsureMessageIndexes create the indexes room listing and unread
// aggregation depend on
func EnsureMessageIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("messages").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "status", Value: 1}}},
	})
	return err
}

func (r *mongoMessageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	_, err := r.coll.InsertOne(ctx, msg)
	return err
}

func (r *mongoMessageRepository) FindByID(ctx context.Context, messageID string) (*domain.Message, error) {
	var msg domain.Message
	err := r.coll.FindOne(ctx, bson.M{"_id": messageID}).Decode(&msg)
	if err == mongo.ErrNoDocuments {
		return nil, errprocess.NotFound("message not found")
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *mongoMessageRepository) FindByRoom(ctx context.Context, roomID string, after *domain.Cursor, limit int64) ([]domain.Message, error) {
	filter := bson.M{"room_id": roomID}
	if after != nil {
		// resume strictly after (created_at, _id) so pages stay stable
		// while new messages keep arriving
		filter["$or"] = bson.A{
			bson.M{"created_at": bson.M{"$gt": after.CreatedAt}},
			bson.M{"created_at": after.CreatedAt, "_id": bson.M{"$gt": after.MessageID}},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var messages []domain.Message
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *mongoMessageRepository) MarkRead(ctx context.Context, messageIDs []string, readerID string) (int64, error) {
	filter := bson.M{
		"_id":         bson.M{"$in": messageIDs},
		"receiver_id": readerID,
		"status":      bson.M{"$ne": domain.StatusRead},
	}
	update := bson.M{"$set": bson.M{"status": domain.StatusRead}}
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *mongoMessageRepository) MarkSenderRead(ctx context.Context, readerID, senderID string) (int64, error) {
	filter := bson.M{
		"sender_id":   senderID,
		"receiver_id": readerID,
		"status":      bson.M{"$ne": domain.StatusRead},
	}
	update := bson.M{"$set": bson.M{"status": domain.StatusRead}}
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// MarkDelivered forward the status of a freshly pushed message. The
// filter keeps the transition monotonic: an already read message is
// left alone.
func (r *mongoMessageRepository) MarkDelivered(ctx context.Context, messageID string) error {
	filter := bson.M{"_id": messageID, "status": domain.StatusSent}
	update := bson.M{"$set": bson.M{"status": domain.StatusDelivered}}
	_, err := r.coll.UpdateOne(ctx, filter, update)
	return err
}

func (r *mongoMessageRepository) UnreadSummary(ctx context.Context, receiverID string) ([]domain.SenderUnread, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "receiver_id", Value: receiverID},
			{Key: "status", Value: bson.D{{Key: "$ne", Value: domain.StatusRead}}},
			{Key: "deleted", Value: false},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$sender_id"},
			{Key: "unread_count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "unread_count", Value: -1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate error: %w", err)
	}
	defer cur.Close(ctx)

	var results []domain.SenderUnread
	if err := cur.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("cursor All error: %w", err)
	}
	return results, nil
}

func (r *mongoMessageRepository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	filter := bson.M{
		"receiver_id": receiverID,
		"status":      bson.M{"$ne": domain.StatusRead},
		"deleted":     false,
	}
	return r.coll.CountDocuments(ctx, filter)
}

func (r *mongoMessageRepository) SoftDelete(ctx context.Context, messageID, requesterID string) error {
	msg, err := r.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != requesterID {
		return errprocess.Forbidden("only the sender can delete a message")
	}

	update := bson.M{"$set": bson.M{"deleted": true}}
	_, err = r.coll.UpdateOne(ctx, bson.M{"_id": messageID}, update)
	return err
}
