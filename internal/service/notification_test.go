package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Davi3103/chamados4/internal/config"
	"github.com/Davi3103/chamados4/internal/domain"
	"github.com/Davi3103/chamados4/internal/mail"
	"github.com/Davi3103/chamados4/internal/service/mocks"
)

func notificationConfig() config.NotificationConfig {
	return config.NotificationConfig{
		Recipient: "support@example.com",
		From:      "noreply@example.com",
		SMTPHost:  "localhost",
		SMTPPort:  1025,
	}
}

func testTicket() *domain.Ticket {
	return &domain.Ticket{
		ID:          1,
		Number:      "TKT-20260901-000042",
		Subject:     "Printer jam",
		Description: "line1\nline2 <b>",
		Priority:    domain.TicketPriorityHigh,
		Urgency:     domain.TicketUrgencyMedium,
		Impact:      domain.TicketImpactMedium,
		CreatedAt:   time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestTicketCreatedSkipsWhenDisabled(t *testing.T) {
	mailer := &mocks.MockMailer{}
	svc := NewNotificationService(mailer, config.NotificationConfig{}, nil)

	sent := svc.TicketCreated(context.Background(), testTicket(), testSubmission())

	assert.False(t, sent)
	assert.Empty(t, mailer.Sent, "disabled notification must not touch the transport")
}

func TestTicketCreatedSendsToConfiguredRecipient(t *testing.T) {
	mailer := &mocks.MockMailer{}
	svc := NewNotificationService(mailer, notificationConfig(), nil)

	sent := svc.TicketCreated(context.Background(), testTicket(), testSubmission())

	assert.True(t, sent)
	require.Len(t, mailer.Sent, 1)
	msg := mailer.Sent[0]
	assert.Equal(t, "support@example.com", msg.To)
	assert.Equal(t, "New Ticket #TKT-20260901-000042 - Printer jam", msg.Subject)
	assert.Equal(t, "ana@x.com", msg.Headers["Reply-To"])
}

func TestTicketCreatedEscapesDescription(t *testing.T) {
	mailer := &mocks.MockMailer{}
	svc := NewNotificationService(mailer, notificationConfig(), nil)

	svc.TicketCreated(context.Background(), testTicket(), testSubmission())

	require.Len(t, mailer.Sent, 1)
	body := mailer.Sent[0].HTMLBody
	assert.Contains(t, body, "line1<br>line2 &lt;b&gt;")
	assert.NotContains(t, body, "<b>")
}

func TestTicketCreatedOmitsEmptyOptionalSections(t *testing.T) {
	mailer := &mocks.MockMailer{}
	svc := NewNotificationService(mailer, notificationConfig(), nil)

	svc.TicketCreated(context.Background(), testTicket(), testSubmission())

	require.Len(t, mailer.Sent, 1)
	body := mailer.Sent[0].HTMLBody
	assert.NotContains(t, body, "Urgency:")
	assert.NotContains(t, body, "<h3>Location</h3>")
	assert.NotContains(t, body, "<h3>Occurrence</h3>")
	assert.NotContains(t, body, "<h3>Additional Information</h3>")
}

func TestTicketCreatedRendersOptionalSections(t *testing.T) {
	mailer := &mocks.MockMailer{}
	svc := NewNotificationService(mailer, notificationConfig(), nil)

	sub := testSubmission()
	urgency := "high"
	phone := "555-0101"
	location := "Building B"
	notes := "second note line"
	sub.Urgency = &urgency
	sub.Phone = &phone
	sub.Location = &location
	sub.Notes = &notes

	svc.TicketCreated(context.Background(), testTicket(), sub)

	require.Len(t, mailer.Sent, 1)
	body := mailer.Sent[0].HTMLBody
	assert.Contains(t, body, "Urgency:</span> High")
	assert.Contains(t, body, "Phone:</span> 555-0101")
	assert.Contains(t, body, "Location:</span> Building B")
	assert.Contains(t, body, "second note line")
}

func TestTicketCreatedReportsTransportFailure(t *testing.T) {
	mailer := &mocks.MockMailer{
		SendFunc: func(ctx context.Context, msg mail.Message) error {
			return errors.New("smtp unreachable")
		},
	}
	core, logs := observer.New(zap.ErrorLevel)
	svc := NewNotificationService(mailer, notificationConfig(), zap.New(core))

	sent := svc.TicketCreated(context.Background(), testTicket(), testSubmission())

	assert.False(t, sent)
	entries := logs.FilterMessage("notification send failed").All()
	require.Len(t, entries, 1)
	logged := fmt.Sprintf("%v", entries[0].ContextMap()["error"])
	assert.Contains(t, logged, "could not send notification")
	assert.Contains(t, logged, "smtp unreachable")
}
