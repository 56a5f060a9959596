package mocks

import (
	"context"
	"errors"
	"io"

	"github.com/Davi3103/chamados4/internal/domain"
	"github.com/Davi3103/chamados4/internal/mail"
	"github.com/Davi3103/chamados4/internal/validation"
)

// MockFileStore is a mock implementation of the storage.FileStore interface.
type MockFileStore struct {
	SaveFunc func(ticketID int64, originalName string, src io.Reader) (string, string, error)
}

// Save implements the FileStore interface.
func (m *MockFileStore) Save(ticketID int64, originalName string, src io.Reader) (string, string, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ticketID, originalName, src)
	}
	return "", "", errors.New("SaveFunc not implemented")
}

// MockMailer is a mock implementation of the mail.Mailer interface.
type MockMailer struct {
	SendFunc func(ctx context.Context, msg mail.Message) error
	Sent     []mail.Message
}

// Send implements the Mailer interface, recording every message.
func (m *MockMailer) Send(ctx context.Context, msg mail.Message) error {
	m.Sent = append(m.Sent, msg)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return nil
}

// MockNotifier is a mock implementation of the service.Notifier interface.
type MockNotifier struct {
	TicketCreatedFunc func(ctx context.Context, ticket *domain.Ticket, sub *validation.Submission) bool
}

// TicketCreated implements the Notifier interface.
func (m *MockNotifier) TicketCreated(ctx context.Context, ticket *domain.Ticket, sub *validation.Submission) bool {
	if m.TicketCreatedFunc != nil {
		return m.TicketCreatedFunc(ctx, ticket, sub)
	}
	return true
}

// MockNumberGenerator is a mock implementation of the service.NumberGenerator interface.
type MockNumberGenerator struct {
	NextFunc func(ctx context.Context) string
}

// Next implements the NumberGenerator interface.
func (m *MockNumberGenerator) Next(ctx context.Context) string {
	if m.NextFunc != nil {
		return m.NextFunc(ctx)
	}
	return "TKT-00000000-000000"
}
