package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/futig/proposal-backend/internal/config"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends HTML mail through a plain SMTP relay
type SMTPMailer struct {
	cfg      config.MailerConfig
	sendMail sendMailFunc
	logger   *zap.Logger
}

func NewSMTPMailer(cfg config.MailerConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:      cfg,
		sendMail: smtp.SendMail,
		logger:   logger,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort

	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	}

	body := buildMessage(m.cfg.FromEmail, msg)

	attempt := 0
	err := m.cfg.Retry.Do(ctx, func() error {
		attempt++
		err := m.sendMail(addr, auth, m.cfg.FromEmail, []string{msg.To}, body)
		if err != nil {
			ctxzap.Warn(ctx, "smtp send failed",
				zap.Error(err),
				zap.Int("attempt", attempt),
				zap.String("to", msg.To),
			)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	ctxzap.Info(ctx, "mail sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

func buildMessage(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}

// MockMailer logs mail instead of sending it
type MockMailer struct {
	logger *zap.Logger
}

func NewMockMailer(logger *zap.Logger) *MockMailer {
	return &MockMailer{logger: logger}
}

func (m *MockMailer) Send(ctx context.Context, msg Message) error {
	ctxzap.Info(ctx, "mock mail",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("html_length", len(msg.HTML)),
	)
	return nil
}
