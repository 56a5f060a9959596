package domain

import "time"

// HistoryEntryType captures who produced a history entry.
type HistoryEntryType string

const (
	HistoryEntryTypeSystem HistoryEntryType = "system"
)

// HistoryEntry is an append-only record tied to a ticket.
type HistoryEntry struct {
	ID          int64
	TicketID    int64
	Type        HistoryEntryType
	Title       string
	Description string
	CreatedAt   time.Time
}

// NewCreationEntry builds the entry recorded when a ticket is opened.
func NewCreationEntry(ticketID int64) *HistoryEntry {
	return &HistoryEntry{
		TicketID:    ticketID,
		Type:        HistoryEntryTypeSystem,
		Title:       "Ticket created",
		Description: "Ticket created through the intake endpoint",
	}
}
