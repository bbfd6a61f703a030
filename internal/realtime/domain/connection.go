package domain

// Connection one live socket owned by a user. Never persisted; the
// registry drops it on disconnect or process restart and clients
// simply reconnect.
type Connection struct {
	ID          string
	UserID      string
	ConnectedAt int64
}
