package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/resend/resend-go/v2"
	"github.com/tenantlens/tenantlens/internal/config"
)

// EmailSender delivers a verification code to an address.
type EmailSender interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}

// NewEmailSender picks a transport from config. Development always logs the
// code instead of sending; production prefers Resend, falls back to SMTP, and
// otherwise refuses every send so the caller surfaces a delivery error.
func NewEmailSender(cfg *config.Config) EmailSender {
	switch {
	case cfg.IsDevelopment():
		return &logSender{}
	case cfg.ResendAPIKey != "":
		return &resendSender{client: resend.NewClient(cfg.ResendAPIKey), from: cfg.EmailFrom}
	case cfg.SMTPHost != "":
		return &smtpSender{
			host: cfg.SMTPHost,
			port: cfg.SMTPPort,
			user: cfg.SMTPUsername,
			pass: cfg.SMTPPassword,
			from: cfg.EmailFrom,
		}
	default:
		return &unconfiguredSender{}
	}
}

const verificationSubject = "Your verification code"

func verificationBody(code string) string {
	return fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code)
}

type resendSender struct {
	client *resend.Client
	from   string
}

func (s *resendSender) SendVerificationCode(ctx context.Context, to, code string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: verificationSubject,
		Text:    verificationBody(code),
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

type smtpSender struct {
	host string
	port int
	user string
	pass string
	from string
}

func (s *smtpSender) SendVerificationCode(_ context.Context, to, code string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.from, to, verificationSubject, verificationBody(code))

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.user, s.pass, s.host)

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}

// logSender is the development transport. The code lands in the server log so
// local signups work without a mail provider.
type logSender struct{}

func (s *logSender) SendVerificationCode(ctx context.Context, to, code string) error {
	slog.InfoContext(ctx, "verification code issued", "to", to, "code", code)
	return nil
}

type unconfiguredSender struct{}

func (s *unconfiguredSender) SendVerificationCode(_ context.Context, _, _ string) error {
	return fmt.Errorf("no email transport configured")
}
