package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"sort"
	"strings"

	"github.com/Davi3103/chamados4/internal/config"
)

// Message is one outbound HTML email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
	Headers  map[string]string
}

// Mailer delivers messages. The transport is an external collaborator; this
// interface is the seam services and tests depend on.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	cfg config.NotificationConfig
}

// NewSMTPMailer builds a mailer from notification config.
func NewSMTPMailer(cfg config.NotificationConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send assembles an RFC 5322 message and hands it to the relay. The context
// deadline is not honored by net/smtp itself; callers keep sends off the
// critical persistence path.
func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)

	var auth smtp.Auth
	if m.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	}

	return smtp.SendMail(addr, auth, m.cfg.From, []string{msg.To}, buildPayload(m.cfg.From, msg))
}

func buildPayload(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + headerValue(from) + "\r\n")
	b.WriteString("To: " + headerValue(msg.To) + "\r\n")
	b.WriteString("Subject: " + headerValue(msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")

	keys := make([]string, 0, len(msg.Headers))
	for key := range msg.Headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		b.WriteString(key + ": " + headerValue(msg.Headers[key]) + "\r\n")
	}

	b.WriteString("\r\n")
	b.WriteString(msg.HTMLBody)
	return []byte(b.String())
}

// headerValue folds CR and LF out of a header value. net/smtp does not
// validate headers, so a raw newline here would terminate the header line
// and smuggle in additional ones.
func headerValue(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
