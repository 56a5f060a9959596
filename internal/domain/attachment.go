package domain

import "time"

// Attachment records metadata for a file stored alongside a ticket.
type Attachment struct {
	ID           int64
	TicketID     int64
	OriginalName string
	StoredName   string
	ContentType  string
	Size         int64
	Path         string
	CreatedAt    time.Time
}
