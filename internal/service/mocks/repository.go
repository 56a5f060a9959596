package mocks

import (
	"context"
	"errors"

	"github.com/Davi3103/chamados4/internal/domain"
)

// MockRequesterRepository is a mock implementation of the RequesterRepository
// interface for testing the service layer.
type MockRequesterRepository struct {
	UpsertFunc func(ctx context.Context, requester *domain.Requester) error
}

// Upsert implements the RequesterRepository interface.
func (m *MockRequesterRepository) Upsert(ctx context.Context, requester *domain.Requester) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, requester)
	}
	return errors.New("UpsertFunc not implemented")
}

// MockTicketRepository is a mock implementation of the TicketRepository interface.
type MockTicketRepository struct {
	CreateWithHistoryFunc func(ctx context.Context, ticket *domain.Ticket, entry *domain.HistoryEntry) error
}

// CreateWithHistory implements the TicketRepository interface.
func (m *MockTicketRepository) CreateWithHistory(ctx context.Context, ticket *domain.Ticket, entry *domain.HistoryEntry) error {
	if m.CreateWithHistoryFunc != nil {
		return m.CreateWithHistoryFunc(ctx, ticket, entry)
	}
	return errors.New("CreateWithHistoryFunc not implemented")
}

// MockAttachmentRepository is a mock implementation of the AttachmentRepository interface.
type MockAttachmentRepository struct {
	CreateFunc func(ctx context.Context, attachment *domain.Attachment) error
}

// Create implements the AttachmentRepository interface.
func (m *MockAttachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, attachment)
	}
	return errors.New("CreateFunc not implemented")
}

// MockActivityLogRepository is a mock implementation of the ActivityLogRepository interface.
type MockActivityLogRepository struct {
	AppendFunc func(ctx context.Context, eventType, message string, actorID int64) error
}

// Append implements the ActivityLogRepository interface.
func (m *MockActivityLogRepository) Append(ctx context.Context, eventType, message string, actorID int64) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, eventType, message, actorID)
	}
	return errors.New("AppendFunc not implemented")
}
