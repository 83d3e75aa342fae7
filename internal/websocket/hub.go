package websocket

import (
	"go-access-admin/internal/event"
)

// Wire payloads pushed to connected dashboards. The channel carries nothing
// else.
const (
	PayloadAccessGranted = "1"
	PayloadAccessDenied  = "0"
)

// Hub owns the set of live subscribers. All membership changes and
// broadcasts go through its Run loop, so the set is never touched from two
// goroutines at once.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	// Event bus feeding access events recorded by the HTTP handlers.
	bus event.Bus
}

func NewHub(bus event.Bus) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		bus:        bus,
	}
}

// Broadcast queues payload for delivery to every currently connected
// subscriber. Delivery is best-effort: no buffering for late joiners, no
// acknowledgment.
func (h *Hub) Broadcast(payload []byte) {
	h.broadcast <- payload
}

func (h *Hub) Run() {
	events, unsubscribe := h.bus.Subscribe()
	defer unsubscribe()

	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case payload := <-h.broadcast:
			h.deliver(payload)
		case e := <-events:
			payload := PayloadAccessDenied
			if e.Type == event.TypeAccessGranted {
				payload = PayloadAccessGranted
			}
			h.deliver([]byte(payload))
		}
	}
}

// deliver sends payload to each subscriber. A subscriber whose outbound
// buffer cannot take the payload is treated as broken and dropped; the rest
// still receive theirs.
func (h *Hub) deliver(payload []byte) {
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
}
