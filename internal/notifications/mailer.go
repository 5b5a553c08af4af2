package notifications

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Mailer delivers a rendered notification to one recipient.
type Mailer interface {
	Send(ctx context.Context, to string, msg *Rendered) error
}

// SMTPConfig holds mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	config SMTPConfig
}

// NewSMTPMailer creates a new SMTP mailer.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPMailer{config: cfg}
}

// Send composes a MIME message and hands it to the relay.
func (m *SMTPMailer) Send(_ context.Context, to string, msg *Rendered) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.config.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(b.String())); err != nil {
		return fmt.Errorf("send mail via %s: %w", addr, err)
	}

	log.Debug().Str("to", to).Str("subject", msg.Subject).Msg("email sent")
	return nil
}

// LogMailer writes deliveries to the log instead of a relay. Used when no
// SMTP host is configured.
type LogMailer struct{}

// Send logs the would-be delivery.
func (LogMailer) Send(_ context.Context, to string, msg *Rendered) error {
	log.Info().Str("to", to).Str("subject", msg.Subject).Msg("email delivery skipped, no SMTP relay configured")
	return nil
}
