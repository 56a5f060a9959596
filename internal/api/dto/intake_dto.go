package dto

// StoredAttachment reports one successfully stored file back to the caller.
type StoredAttachment struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// IntakeData is the success payload.
type IntakeData struct {
	TicketNumber string             `json:"ticketNumber"`
	ID           int64              `json:"id"`
	Attachments  []StoredAttachment `json:"attachments"`
}

// IntakeResponse is the envelope every intake response uses, success or not.
type IntakeResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    *IntakeData `json:"data,omitempty"`
}
