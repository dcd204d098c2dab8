package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
)

// Mailer sends a single plain-text message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NewMailer picks an implementation based on configuration. Without an SMTP
// host, mail goes to the log instead of the wire.
func NewMailer(cfg config.MailConfig, logger *zap.Logger) Mailer {
	if strings.TrimSpace(cfg.SMTPHost) == "" {
		logger.Warn("MAIL_SMTP_HOST not provided; emails will be logged only")
		return &logMailer{logger: logger, from: cfg.From}
	}
	return NewSMTPMailer(cfg)
}

type smtpMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPMailer builds a Mailer backed by net/smtp.
func NewSMTPMailer(cfg config.MailConfig) Mailer {
	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &smtpMailer{addr: cfg.SMTPAddr(), auth: auth, from: cfg.From}
}

func (m *smtpMailer) Send(_ context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)
	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg))
}

type logMailer struct {
	logger *zap.Logger
	from   string
}

func (m *logMailer) Send(_ context.Context, to, subject, _ string) error {
	m.logger.Info("email (stub)",
		zap.String("from", m.from),
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}
