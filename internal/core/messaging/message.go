package messaging

import (
	"time"

	"github.com/google/uuid"
)

// Message is an immutable envelope transported by the Queue.
//
// Type is the routing key consumers switch on; Source identifies the
// publisher; Data is an opaque payload. Treat delivered messages as
// read-only.
type Message struct {
	ID        string
	Type      string
	Source    string
	Timestamp time.Time
	Data      any
}

// NewMessage creates a message with a fresh id and the current time.
func NewMessage(typ, source string, data any) Message {
	return Message{
		ID:        uuid.NewString(),
		Type:      typ,
		Source:    source,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// Handler is invoked once per delivered message, in send order.
type Handler func(Message)
