package app

import (
	"sync"

	"github.com/Saieshwar5/sangam-sub001/internal/realtime/domain"
	"github.com/Saieshwar5/sangam-sub001/pkg/logger"

	"go.uber.org/zap"
)

const outboundBufferSize = 64

// Conn one live connection with its outbound queue. The queue is
// drained by the connection's write pump; enqueue never blocks the
// caller.
type Conn struct {
	Info domain.Connection

	send      chan []byte
	closeOnce sync.Once
	done      chan struct{}
}

// NewConn create a Conn for a registered socket
func NewConn(connID, userID string) *Conn {
	return &Conn{
		Info: domain.Connection{
			ID:          connID,
			UserID:      userID,
			ConnectedAt: domain.Now(),
		},
		send: make(chan []byte, outboundBufferSize),
		done: make(chan struct{}),
	}
}

// Enqueue push data onto the outbound queue without blocking. A full
// buffer means a slow consumer; the event is dropped and the client
// reconciles through the REST listing.
func (c *Conn) Enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		logger.Log.Warn("outbound queue full, dropping event",
			zap.String("connID", c.Info.ID),
			zap.String("userID", c.Info.UserID))
		return false
	}
}

// Outbound queue drained by the write pump
func (c *Conn) Outbound() <-chan []byte { return c.send }

// Done closed when the connection is unregistered
func (c *Conn) Done() <-chan struct{} { return c.done }

// Close mark the connection dead, idempotent
func (c *Conn) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Registry tracks which users currently have live connections and
// which group channels each connection subscribed to. This is the only
// shared mutable state in the service; every mutation goes through the
// one mutex below.
type Registry struct {
	mu     sync.RWMutex
	conns  map[string]*Conn            // connID -> conn
	users  map[string]map[string]*Conn // userID -> connID -> conn
	groups map[string]map[string]*Conn // groupID -> connID -> conn
}

// NewRegistry create an empty presence registry
func NewRegistry() *Registry {
	return &Registry{
		conns:  make(map[string]*Conn),
		users:  make(map[string]map[string]*Conn),
		groups: make(map[string]map[string]*Conn),
	}
}

// Register add a connection, idempotent per connection id
func (r *Registry) Register(conn *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	connID := conn.Info.ID
	if _, ok := r.conns[connID]; ok {
		return
	}
	r.conns[connID] = conn

	userID := conn.Info.UserID
	if r.users[userID] == nil {
		r.users[userID] = make(map[string]*Conn)
	}
	r.users[userID][connID] = conn
}

// Unregister drop a connection and all its group subscriptions, no-op
// when the id is unknown so duplicate disconnect events are harmless
func (r *Registry) Unregister(connID string) {
	r.mu.Lock()
	conn, ok := r.conns[connID]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.conns, connID)

	userID := conn.Info.UserID
	if userConns, ok := r.users[userID]; ok {
		delete(userConns, connID)
		if len(userConns) == 0 {
			delete(r.users, userID)
		}
	}

	for groupID, members := range r.groups {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.groups, groupID)
		}
	}
	r.mu.Unlock()

	conn.Close()
}

// Subscribe attach a registered connection to a group channel. The
// subscription lives exactly as long as the connection.
func (r *Registry) Subscribe(connID, groupID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[connID]
	if !ok {
		return
	}
	if r.groups[groupID] == nil {
		r.groups[groupID] = make(map[string]*Conn)
	}
	r.groups[groupID][connID] = conn
}

// IsOnline report whether the user has at least one live connection
func (r *Registry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users[userID]) > 0
}

// ConnectionsOf snapshot of the user's live connections
func (r *Registry) ConnectionsOf(userID string) []*Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]*Conn, 0, len(r.users[userID]))
	for _, c := range r.users[userID] {
		conns = append(conns, c)
	}
	return conns
}

// GroupConnections snapshot of the connections subscribed to a group
func (r *Registry) GroupConnections(groupID string) []*Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]*Conn, 0, len(r.groups[groupID]))
	for _, c := range r.groups[groupID] {
		conns = append(conns, c)
	}
	return conns
}
