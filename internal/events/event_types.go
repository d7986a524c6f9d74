package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationSubmitted EventType = "application_submitted"
	EventApplicationApproved  EventType = "application_approved"
	EventApplicationRejected  EventType = "application_rejected"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID int64       `json:"request_id"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	PhotoKey *string `json:"photo_key,omitempty"`
}

// ApplicationDecidedPayload payload.
type ApplicationDecidedPayload struct {
	Decision string `json:"decision"`
}
