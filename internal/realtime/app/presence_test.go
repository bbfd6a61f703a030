package app

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_RegisterIdempotent(t *testing.T) {
	registry := NewRegistry()
	conn := NewConn("c1", "alice")

	registry.Register(conn)
	registry.Register(conn)

	assert.True(t, registry.IsOnline("alice"))
	assert.Len(t, registry.ConnectionsOf("alice"), 1)
}

func TestRegistry_MultipleDevices(t *testing.T) {
	registry := NewRegistry()
	registry.Register(NewConn("c1", "alice"))
	registry.Register(NewConn("c2", "alice"))

	assert.Len(t, registry.ConnectionsOf("alice"), 2)

	// dropping one device keeps the user online
	registry.Unregister("c1")
	assert.True(t, registry.IsOnline("alice"))

	registry.Unregister("c2")
	assert.False(t, registry.IsOnline("alice"))
	assert.Empty(t, registry.ConnectionsOf("alice"))
}

func TestRegistry_UnregisterUnknownIsNoop(t *testing.T) {
	registry := NewRegistry()
	registry.Register(NewConn("c1", "alice"))

	registry.Unregister("nope")
	registry.Unregister("c1")
	registry.Unregister("c1")

	assert.False(t, registry.IsOnline("alice"))
}

func TestRegistry_UnregisterClosesConn(t *testing.T) {
	registry := NewRegistry()
	conn := NewConn("c1", "alice")
	registry.Register(conn)

	registry.Unregister("c1")

	select {
	case <-conn.Done():
	default:
		t.Fatal("expected connection to be closed after unregister")
	}
	assert.False(t, conn.Enqueue([]byte("late")))
}

func TestRegistry_GroupSubscriptions(t *testing.T) {
	registry := NewRegistry()
	registry.Register(NewConn("c1", "alice"))
	registry.Register(NewConn("c2", "bob"))

	registry.Subscribe("c1", "g1")
	registry.Subscribe("c2", "g1")
	registry.Subscribe("unknown", "g1")

	assert.Len(t, registry.GroupConnections("g1"), 2)

	// subscription dies with the connection
	registry.Unregister("c1")
	assert.Len(t, registry.GroupConnections("g1"), 1)

	registry.Unregister("c2")
	assert.Empty(t, registry.GroupConnections("g1"))
}

func TestRegistry_ConcurrentChurn(t *testing.T) {
	registry := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			connID := fmt.Sprintf("c%d", i)
			userID := fmt.Sprintf("u%d", i%5)
			registry.Register(NewConn(connID, userID))
			registry.Subscribe(connID, "g1")
			registry.IsOnline(userID)
			registry.GroupConnections("g1")
			registry.Unregister(connID)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		assert.False(t, registry.IsOnline(fmt.Sprintf("u%d", i)))
	}
	assert.Empty(t, registry.GroupConnections("g1"))
}

func TestConn_EnqueueDropsWhenFull(t *testing.T) {
	conn := NewConn("c1", "alice")

	for i := 0; i < outboundBufferSize; i++ {
		assert.True(t, conn.Enqueue([]byte("ev")))
	}
	// slow consumer, the extra event is dropped instead of blocking
	assert.False(t, conn.Enqueue([]byte("overflow")))
}
