package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPasswordResetRequested EventType = "password_reset_requested"
	EventUserRegistered         EventType = "user_registered"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New builds an event with a fresh id and timestamp.
func New(eventType EventType, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// PasswordResetRequestedPayload carries what the reset email needs.
type PasswordResetRequestedPayload struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserRegisteredPayload describes a newly created account.
type UserRegisteredPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Source string `json:"source"`
}
