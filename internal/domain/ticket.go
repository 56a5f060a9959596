package domain

import "time"

// TicketPriority enumerates accepted priority values.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// TicketUrgency enumerates accepted urgency values.
type TicketUrgency string

const (
	TicketUrgencyLow    TicketUrgency = "low"
	TicketUrgencyMedium TicketUrgency = "medium"
	TicketUrgencyHigh   TicketUrgency = "high"
)

// TicketImpact enumerates accepted business impact values.
type TicketImpact string

const (
	TicketImpactLow      TicketImpact = "low"
	TicketImpactMedium   TicketImpact = "medium"
	TicketImpactHigh     TicketImpact = "high"
	TicketImpactCritical TicketImpact = "critical"
)

// Ticket is the aggregate created by the intake flow. Immutable after creation.
type Ticket struct {
	ID             int64
	Number         string
	RequesterID    int64
	CategoryID     int64
	Subject        string
	Description    string
	Priority       TicketPriority
	Urgency        TicketUrgency
	Impact         TicketImpact
	Terminal       *string
	Location       *string
	OccurrenceDate *string
	OccurrenceTime *string
	RelatedURL     *string
	Notes          *string
	CreatedAt      time.Time
}
