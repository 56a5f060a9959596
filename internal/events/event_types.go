package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "TICKET_CREATED"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	TicketID  int64     `json:"ticket_id"`
	ActorID   int64     `json:"actor_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
