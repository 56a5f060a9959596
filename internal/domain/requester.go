package domain

import "time"

// Requester is the person opening tickets, keyed by email. Re-submissions with
// the same email overwrite the contact fields (last write wins).
type Requester struct {
	ID        int64
	Name      string
	Email     string
	Phone     *string
	Company   *string
	TaxIDA    *string
	TaxIDB    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
