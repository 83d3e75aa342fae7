package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeAccessGranted Type = "access.granted"
	TypeAccessDenied  Type = "access.denied"
)

type Event struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	Timestamp string `json:"timestamp"`
}

// New stamps a fresh event with a unique ID and the current time.
func New(t Type) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func()) // Returns channel and unsubscribe function
}
