// internal/pkg/email/mailer.go
package email

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
)

// Message is a plain-text email
type Message struct {
	To      []string
	Subject string
	Body    string
	ReplyTo string
}

// Sender delivers email. Satisfied by the SMTP mailer in production and by
// fakes in tests.
type Sender interface {
	Send(msg *Message) error
}

// Mailer sends email over SMTP using the configured account
type Mailer struct {
	config *config.Config
}

// NewMailer creates a new SMTP mailer
func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{config: cfg}
}

// Send delivers the message via SMTP
func (m *Mailer) Send(msg *Message) error {
	if m.config.Email.SMTPHost == "" {
		return fmt.Errorf("SMTP configuration incomplete: missing host")
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients")
	}

	var auth smtp.Auth
	if m.config.Email.SMTPUser != "" {
		auth = smtp.PlainAuth("",
			m.config.Email.SMTPUser,
			m.config.Email.SMTPPass,
			m.config.Email.SMTPHost)
	}

	from := m.config.Email.FromEmail
	if m.config.Email.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.config.Email.FromName, m.config.Email.FromEmail)
	}

	headers := []string{
		"From: " + from,
		"To: " + strings.Join(msg.To, ", "),
		"Subject: " + msg.Subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
	}
	if msg.ReplyTo != "" {
		headers = append(headers, "Reply-To: "+msg.ReplyTo)
	}

	var buf bytes.Buffer
	for _, h := range headers {
		buf.WriteString(h)
		buf.WriteString("\r\n")
	}
	buf.WriteString("\r\n")
	buf.WriteString(msg.Body)

	serverAddr := fmt.Sprintf("%s:%d", m.config.Email.SMTPHost, m.config.Email.SMTPPort)
	if err := smtp.SendMail(serverAddr, auth, m.config.Email.FromEmail, msg.To, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
