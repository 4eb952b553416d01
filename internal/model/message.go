package model

import (
	"time"

	"github.com/google/uuid"
)

// Message is one line of a session transcript.
type Message struct {
	// ID is the unique identifier for this message.
	ID string `json:"id"`
	// Role identifies the author.
	Role Role `json:"role"`
	// Text is the message body.
	Text string `json:"text"`
	// SentAt is the Unix timestamp when the message was produced.
	SentAt int64 `json:"sent_at"`
}

// NewMessage creates a message stamped with the current time.
func NewMessage(role Role, text string) Message {
	return Message{
		ID:     uuid.New().String(),
		Role:   role,
		Text:   text,
		SentAt: time.Now().Unix(),
	}
}

// Speaker returns the label to display for the message author.
// Falls back to the raw role for unknown values.
func (m Message) Speaker() string {
	switch m.Role {
	case RoleUser:
		return "You"
	case RoleAgent:
		return "Ember"
	case RoleSystem:
		return "•"
	}
	return string(m.Role)
}
