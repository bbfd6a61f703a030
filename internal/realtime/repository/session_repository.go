package repository

import (
	"context"
	"time"

	"github.com/Saieshwar5/sangam-sub001/pkg/database"
)

const sessionKeyPrefix = "session:user:"

// SessionData what the login collaborator stores per signed-in user
type SessionData struct {
	UserID       string `json:"user_id"`
	LastActivity int64  `json:"last_activity"`
}

// SessionRepository liveness check for issued tokens. A token whose
// session was force-logged-out stops working even before it expires.
type SessionRepository interface {
	IsAlive(ctx context.Context, userID string) bool
	Touch(ctx context.Context, userID string, ttl time.Duration) error
}

type sessionRepository struct {
	store database.RedisRepository[SessionData]
}

// NewSessionRepository create a redis backed SessionRepository
func NewSessionRepository(store database.RedisRepository[SessionData]) SessionRepository {
	return &sessionRepository{store: store}
}

func (r *sessionRepository) IsAlive(ctx context.Context, userID string) bool {
	_, err := r.store.Get(ctx, sessionKeyPrefix+userID)
	return err == nil
}

func (r *sessionRepository) Touch(ctx context.Context, userID string, ttl time.Duration) error {
	return r.store.ExtendTTL(ctx, sessionKeyPrefix+userID, ttl)
}
