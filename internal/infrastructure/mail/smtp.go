// Package mail sends the platform's two transactional messages over SMTP.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

// Config carries the SMTP credentials and sender identity.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// SMTPMailer implements ports.Mailer over net/smtp with PLAIN auth.
type SMTPMailer struct {
	cfg    Config
	logger zerolog.Logger
}

func NewSMTPMailer(cfg Config, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

func (m *SMTPMailer) SendActivationCode(ctx context.Context, email, code string) error {
	body := fmt.Sprintf("<h5>Your code verify:</h5><p>%s</p>", code)
	return m.send(ctx, email, "Code Verify", body)
}

func (m *SMTPMailer) SendNewPassword(ctx context.Context, email, password string) error {
	body := fmt.Sprintf("<h5>Your new password:</h5><p>%s</p>", password)
	return m.send(ctx, email, "New Password", body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
		"",
		htmlBody,
	}, "\r\n")

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.User, []string{to}, []byte(msg)); err != nil {
		m.logger.Error().Err(err).Str("to", to).Msg("failed to send mail")
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
