package pawn

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID        string
	CreatedAt time.Time
	Message   any
}

func newMessage(id string, message any) *Message {
	return &Message{
		ID:        id,
		CreatedAt: time.Now(),
		Message:   message,
	}
}

func NewEventMessage(ev ChainEvent) *Message {
	return newMessage(uuid.NewString(), ev)
}
