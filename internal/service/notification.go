package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"

	"github.com/Davi3103/chamados4/internal/config"
	"github.com/Davi3103/chamados4/internal/domain"
	"github.com/Davi3103/chamados4/internal/mail"
	"github.com/Davi3103/chamados4/internal/validation"
	"github.com/Davi3103/chamados4/pkg/util"
)

// NotificationService emails a summary of each new ticket to the configured
// recipient. Delivery is fire-and-forget relative to ticket persistence.
type NotificationService struct {
	mailer mail.Mailer
	cfg    config.NotificationConfig
	logger *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(mailer mail.Mailer, cfg config.NotificationConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{mailer: mailer, cfg: cfg, logger: logger}
}

// TicketCreated builds and sends the HTML notification. Returns whether the
// message was handed to the transport successfully.
func (n *NotificationService) TicketCreated(ctx context.Context, ticket *domain.Ticket, sub *validation.Submission) bool {
	if !n.cfg.Enabled() {
		n.logger.Debug("notification disabled, skipping", zap.String("ticket", ticket.Number))
		return false
	}

	body, err := renderTicketEmail(ticket, sub)
	if err != nil {
		n.logger.Error("notification render failed", zap.String("ticket", ticket.Number), zap.Error(err))
		return false
	}

	msg := mail.Message{
		To:       n.cfg.Recipient,
		Subject:  fmt.Sprintf("New Ticket #%s - %s", ticket.Number, ticket.Subject),
		HTMLBody: body,
		Headers: map[string]string{
			"Reply-To": sub.Email,
		},
	}

	if err := n.mailer.Send(ctx, msg); err != nil {
		n.logger.Error("notification send failed",
			zap.String("ticket", ticket.Number),
			zap.String("recipient", n.cfg.Recipient),
			zap.Error(util.NewNotificationError(err)))
		return false
	}

	n.logger.Info("notification sent",
		zap.String("ticket", ticket.Number),
		zap.String("recipient", n.cfg.Recipient))
	return true
}

type ticketEmailData struct {
	Number          string
	Subject         string
	Category        string
	Priority        string
	Urgency         string
	CreatedAt       string
	Name            string
	Email           string
	Phone           string
	Company         string
	DescriptionHTML template.HTML
	Terminal        string
	Location        string
	OccurrenceDate  string
	OccurrenceTime  string
	RelatedURL      string
	Impact          string
	NotesHTML       template.HTML
}

func renderTicketEmail(ticket *domain.Ticket, sub *validation.Submission) (string, error) {
	data := ticketEmailData{
		Number:          ticket.Number,
		Subject:         ticket.Subject,
		Category:        capitalize(sub.Category),
		Priority:        capitalize(string(ticket.Priority)),
		CreatedAt:       ticket.CreatedAt.Format("2006-01-02 15:04:05"),
		Name:            sub.Name,
		Email:           sub.Email,
		Phone:           deref(sub.Phone),
		Company:         deref(sub.Company),
		DescriptionHTML: multiline(ticket.Description),
		Terminal:        deref(sub.Terminal),
		Location:        deref(sub.Location),
		OccurrenceDate:  deref(sub.OccurrenceDate),
		OccurrenceTime:  deref(sub.OccurrenceTime),
		RelatedURL:      deref(sub.RelatedURL),
	}
	if sub.Urgency != nil {
		data.Urgency = capitalize(*sub.Urgency)
	}
	if sub.Impact != nil {
		data.Impact = capitalize(*sub.Impact)
	}
	if sub.Notes != nil {
		data.NotesHTML = multiline(*sub.Notes)
	}

	var buf bytes.Buffer
	if err := ticketEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// multiline escapes user text and preserves its line breaks as <br> tags.
func multiline(text string) template.HTML {
	escaped := template.HTMLEscapeString(text)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func deref(val *string) string {
	if val == nil {
		return ""
	}
	return *val
}

var ticketEmailTmpl = template.Must(template.New("ticket_created").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #4a5fc1; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .content { background: #f9f9f9; padding: 20px; border: 1px solid #ddd; }
        .footer { background: #333; color: white; padding: 15px; text-align: center; border-radius: 0 0 8px 8px; }
        .info-box { background: white; padding: 15px; margin: 10px 0; border-left: 4px solid #4a5fc1; border-radius: 4px; }
        .label { font-weight: bold; color: #555; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Ticket Opened</h1>
            <h2>#{{.Number}}</h2>
        </div>
        <div class="content">
            <div class="info-box">
                <h3>Ticket Details</h3>
                <p><span class="label">Number:</span> {{.Number}}</p>
                <p><span class="label">Subject:</span> {{.Subject}}</p>
                <p><span class="label">Category:</span> {{.Category}}</p>
                <p><span class="label">Priority:</span> {{.Priority}}</p>
                {{if .Urgency}}<p><span class="label">Urgency:</span> {{.Urgency}}</p>{{end}}
                <p><span class="label">Opened At:</span> {{.CreatedAt}}</p>
            </div>
            <div class="info-box">
                <h3>Requester</h3>
                <p><span class="label">Name:</span> {{.Name}}</p>
                <p><span class="label">Email:</span> {{.Email}}</p>
                {{if .Phone}}<p><span class="label">Phone:</span> {{.Phone}}</p>{{end}}
                {{if .Company}}<p><span class="label">Company:</span> {{.Company}}</p>{{end}}
            </div>
            <div class="info-box">
                <h3>Description</h3>
                <p>{{.DescriptionHTML}}</p>
            </div>
            {{if or .Terminal .Location}}
            <div class="info-box">
                <h3>Location</h3>
                {{if .Terminal}}<p><span class="label">Terminal/Equipment:</span> {{.Terminal}}</p>{{end}}
                {{if .Location}}<p><span class="label">Location:</span> {{.Location}}</p>{{end}}
            </div>
            {{end}}
            {{if or .OccurrenceDate .OccurrenceTime}}
            <div class="info-box">
                <h3>Occurrence</h3>
                {{if .OccurrenceDate}}<p><span class="label">Date:</span> {{.OccurrenceDate}}</p>{{end}}
                {{if .OccurrenceTime}}<p><span class="label">Time:</span> {{.OccurrenceTime}}</p>{{end}}
            </div>
            {{end}}
            {{if or .RelatedURL .Impact .NotesHTML}}
            <div class="info-box">
                <h3>Additional Information</h3>
                {{if .RelatedURL}}<p><span class="label">Related URL:</span> <a href="{{.RelatedURL}}">{{.RelatedURL}}</a></p>{{end}}
                {{if .Impact}}<p><span class="label">Business Impact:</span> {{.Impact}}</p>{{end}}
                {{if .NotesHTML}}<p><span class="label">Notes:</span><br>{{.NotesHTML}}</p>{{end}}
            </div>
            {{end}}
        </div>
        <div class="footer">
            <p>Ticket Intake Service</p>
            <p>This email was generated automatically. To reply, use: {{.Email}}</p>
        </div>
    </div>
</body>
</html>
`))
