package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-access-admin/internal/event"
)

func newTestClient(hub *Hub, buffer int) *Client {
	return &Client{hub: hub, send: make(chan []byte, buffer)}
}

func receivePayload(t *testing.T, c *Client) string {
	t.Helper()

	select {
	case payload, ok := <-c.send:
		require.True(t, ok, "send channel closed unexpectedly")
		return string(payload)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for payload")
		return ""
	}
}

func requireClosed(t *testing.T, c *Client) {
	t.Helper()

	select {
	case _, ok := <-c.send:
		require.False(t, ok, "expected send channel to be closed")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for send channel to close")
	}
}

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	t.Parallel()

	hub := NewHub(event.NewBus())
	go hub.Run()

	first := newTestClient(hub, 4)
	second := newTestClient(hub, 4)
	hub.register <- first
	hub.register <- second

	hub.Broadcast([]byte(PayloadAccessGranted))

	require.Equal(t, "1", receivePayload(t, first))
	require.Equal(t, "1", receivePayload(t, second))
}

func TestHub_BrokenSubscriberIsDroppedOthersStillServed(t *testing.T) {
	t.Parallel()

	hub := NewHub(event.NewBus())
	go hub.Run()

	healthyOne := newTestClient(hub, 4)
	healthyTwo := newTestClient(hub, 4)
	broken := newTestClient(hub, 0) // zero buffer and nobody reading
	hub.register <- healthyOne
	hub.register <- healthyTwo
	hub.register <- broken

	hub.Broadcast([]byte(PayloadAccessDenied))

	require.Equal(t, "0", receivePayload(t, healthyOne))
	require.Equal(t, "0", receivePayload(t, healthyTwo))
	requireClosed(t, broken)

	// The broken subscriber is gone; later broadcasts reach the survivors.
	hub.Broadcast([]byte(PayloadAccessGranted))
	require.Equal(t, "1", receivePayload(t, healthyOne))
	require.Equal(t, "1", receivePayload(t, healthyTwo))
}

func TestHub_UnregisterClosesSendChannel(t *testing.T) {
	t.Parallel()

	hub := NewHub(event.NewBus())
	go hub.Run()

	client := newTestClient(hub, 4)
	hub.register <- client
	hub.unregister <- client

	requireClosed(t, client)

	// Unregistering a client that already left is a no-op.
	hub.unregister <- client

	// The hub keeps serving remaining subscribers.
	survivor := newTestClient(hub, 4)
	hub.register <- survivor
	hub.Broadcast([]byte(PayloadAccessGranted))
	require.Equal(t, "1", receivePayload(t, survivor))
}

func TestHub_BusEventsMapToWirePayloads(t *testing.T) {
	t.Parallel()

	bus := event.NewBus()
	hub := NewHub(bus)
	go hub.Run()

	client := newTestClient(hub, 4)
	hub.register <- client

	bus.Publish(event.New(event.TypeAccessGranted))
	require.Equal(t, "1", receivePayload(t, client))

	bus.Publish(event.New(event.TypeAccessDenied))
	require.Equal(t, "0", receivePayload(t, client))
}
