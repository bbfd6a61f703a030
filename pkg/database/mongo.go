package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Saieshwar5/sangam-sub001/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// NewMongoDB create a new mongoDB connection. Connect alone does not
// dial, so every attempt is verified with a primary ping before the
// handle is handed out.
func NewMongoDB(ctx context.Context, d Connection, dbName string) (*MongoDB, error) {
	clientOpts := options.Client().ApplyURI(d.ConnectStr)

	var lastErr error
	for i := 0; i <= d.RetryCount; i++ {
		client, err := mongo.Connect(ctx, clientOpts)
		if err == nil {
			if err = client.Ping(ctx, readpref.Primary()); err == nil {
				return &MongoDB{
					Client:   client,
					Database: client.Database(dbName),
				}, nil
			}
			_ = client.Disconnect(ctx)
		}
		lastErr = err

		if i < d.RetryCount {
			logger.Log.Warn(
				"Failed to connect to mongoDB database, retrying...",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(d.RetryInterval)
		}
	}

	return nil, fmt.Errorf("failed to connect to MongoDB after retries: %w", lastErr)
}

// Close disenable mongoDB connection
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
