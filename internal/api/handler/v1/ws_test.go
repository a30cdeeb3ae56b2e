package v1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubClient(userID uint) *wsClient {
	return &wsClient{
		send:   make(chan []byte, 1),
		userID: userID,
	}
}

// assertClosed reads the channel expecting it closed, with a timeout so
// the hub loop has time to process the preceding channel send.
func assertClosed(t *testing.T, ch chan []byte) {
	t.Helper()

	select {
	case _, open := <-ch:
		assert.False(t, open, "send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
}

func (h *ChatHub) currentClient(userID uint) *wsClient {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()

	return h.clients[userID]
}

func TestChatHubReconnectDisplacesPreviousClient(t *testing.T) {
	hub := NewChatHub(nil, nil)
	go hub.Run()

	first := newHubClient(1)
	second := newHubClient(1)

	hub.register <- first
	hub.register <- second

	// the displaced connection's pump must be released
	assertClosed(t, first.send)
	require.Same(t, second, hub.currentClient(1))

	// the stale unregister from the displaced client leaves the
	// replacement untouched
	hub.unregister <- first
	hub.unregister <- second
	assertClosed(t, second.send)
	assert.Nil(t, hub.currentClient(1))
}

func TestChatHubUnregisterClosesSend(t *testing.T) {
	hub := NewChatHub(nil, nil)
	go hub.Run()

	client := newHubClient(7)
	hub.register <- client
	hub.unregister <- client

	assertClosed(t, client.send)
	assert.Nil(t, hub.currentClient(7))
}
