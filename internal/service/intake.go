package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Davi3103/chamados4/internal/config"
	"github.com/Davi3103/chamados4/internal/domain"
	"github.com/Davi3103/chamados4/internal/events"
	"github.com/Davi3103/chamados4/internal/repository"
	"github.com/Davi3103/chamados4/internal/storage"
	"github.com/Davi3103/chamados4/internal/validation"
	"github.com/Davi3103/chamados4/pkg/util"
)

// Notifier reports ticket creation to the configured recipient. The returned
// flag is informational only; delivery failures never abort the intake flow.
type Notifier interface {
	TicketCreated(ctx context.Context, ticket *domain.Ticket, sub *validation.Submission) bool
}

// IntakeService runs the single-request pipeline: upsert requester, create
// ticket with a unique number, store attachments best-effort, notify.
type IntakeService struct {
	requesters  repository.RequesterRepository
	tickets     repository.TicketRepository
	attachments repository.AttachmentRepository
	numbers     NumberGenerator
	files       storage.FileStore
	notifier    Notifier
	dispatcher  events.Dispatcher
	categories  config.CategoryConfig
	upload      config.UploadConfig
	maxAttempts int
	logger      *zap.Logger
}

// IntakeDependencies bundles collaborators for the intake service.
type IntakeDependencies struct {
	RequesterRepo  repository.RequesterRepository
	TicketRepo     repository.TicketRepository
	AttachmentRepo repository.AttachmentRepository
	Numbers        NumberGenerator
	Files          storage.FileStore
	Notifier       Notifier
	Dispatcher     events.Dispatcher
	Categories     config.CategoryConfig
	Upload         config.UploadConfig
	MaxAttempts    int
	Logger         *zap.Logger
}

// IntakeResult is what a successful submission yields.
type IntakeResult struct {
	TicketID     int64
	TicketNumber string
	Attachments  []AttachmentResult
	Notified     bool
}

// NewIntakeService constructs the service.
func NewIntakeService(deps IntakeDependencies) *IntakeService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxAttempts := deps.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &IntakeService{
		requesters:  deps.RequesterRepo,
		tickets:     deps.TicketRepo,
		attachments: deps.AttachmentRepo,
		numbers:     deps.Numbers,
		files:       deps.Files,
		notifier:    deps.Notifier,
		dispatcher:  deps.Dispatcher,
		categories:  deps.Categories,
		upload:      deps.Upload,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Submit processes one sanitized submission end to end. The submission must
// already have passed validation; Submit performs no input checks of its own.
func (s *IntakeService) Submit(ctx context.Context, sub *validation.Submission, files []UploadedFile) (*IntakeResult, error) {
	requester := &domain.Requester{
		Name:    sub.Name,
		Email:   sub.Email,
		Phone:   sub.Phone,
		Company: sub.Company,
		TaxIDA:  sub.TaxIDA,
		TaxIDB:  sub.TaxIDB,
	}
	if err := s.requesters.Upsert(ctx, requester); err != nil {
		s.logger.Error("requester upsert failed", zap.String("email", sub.Email), zap.Error(err))
		return nil, util.NewPersistenceError("could not process requester", err)
	}

	ticket, err := s.createTicket(ctx, sub, requester.ID)
	if err != nil {
		return nil, err
	}

	results := s.processAttachments(ctx, ticket.ID, files)

	s.publishCreated(ctx, ticket, requester.ID)

	notified := s.notifier.TicketCreated(ctx, ticket, sub)

	return &IntakeResult{
		TicketID:     ticket.ID,
		TicketNumber: ticket.Number,
		Attachments:  results,
		Notified:     notified,
	}, nil
}

func (s *IntakeService) createTicket(ctx context.Context, sub *validation.Submission, requesterID int64) (*domain.Ticket, error) {
	categoryID, ok := s.categories.Table[sub.Category]
	if !ok {
		categoryID = s.categories.FallbackID()
	}

	urgency := domain.TicketUrgencyMedium
	if sub.Urgency != nil {
		urgency = domain.TicketUrgency(*sub.Urgency)
	}
	impact := domain.TicketImpactMedium
	if sub.Impact != nil {
		impact = domain.TicketImpact(*sub.Impact)
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		ticket := &domain.Ticket{
			Number:         s.numbers.Next(ctx),
			RequesterID:    requesterID,
			CategoryID:     categoryID,
			Subject:        sub.Subject,
			Description:    sub.Description,
			Priority:       domain.TicketPriority(sub.Priority),
			Urgency:        urgency,
			Impact:         impact,
			Terminal:       sub.Terminal,
			Location:       sub.Location,
			OccurrenceDate: sub.OccurrenceDate,
			OccurrenceTime: sub.OccurrenceTime,
			RelatedURL:     sub.RelatedURL,
			Notes:          sub.Notes,
		}

		err := s.tickets.CreateWithHistory(ctx, ticket, domain.NewCreationEntry(0))
		if err == nil {
			return ticket, nil
		}
		if errors.Is(err, repository.ErrDuplicateNumber) {
			s.logger.Warn("ticket number collision, regenerating",
				zap.String("number", ticket.Number), zap.Int("attempt", attempt+1))
			continue
		}
		s.logger.Error("ticket insert failed", zap.Error(err))
		return nil, util.NewPersistenceError("could not create ticket", err)
	}

	err := fmt.Errorf("gave up after %d ticket number collisions", s.maxAttempts)
	s.logger.Error("ticket creation exhausted retries", zap.Error(err))
	return nil, util.NewPersistenceError("could not create ticket", err)
}

func (s *IntakeService) publishCreated(ctx context.Context, ticket *domain.Ticket, actorID int64) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketCreated,
		TicketID:  ticket.ID,
		ActorID:   actorID,
		Message:   fmt.Sprintf("Ticket %s created", ticket.Number),
		Timestamp: time.Now(),
	})
}
