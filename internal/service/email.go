package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// Mailer delivers the transactional emails of the account flows.
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, to, name string) error
	SendPasswordResetEmail(ctx context.Context, to, name, resetURL string, expiry time.Duration) error
	SendOTPEmail(ctx context.Context, to, name, code string, expiry time.Duration) error
	SendAccountDeletedEmail(ctx context.Context, to, name string) error
}

// EmailService sends through Resend. In development mode messages are only logged.
type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appName   string
}

func NewEmailService(apiKey, fromEmail, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appName:   appName,
	}
}

func (s *EmailService) SendWelcomeEmail(ctx context.Context, to, name string) error {
	subject, body := welcomeEmailTemplate(name, s.appName)
	return s.send(ctx, "welcome", to, subject, body)
}

func (s *EmailService) SendPasswordResetEmail(ctx context.Context, to, name, resetURL string, expiry time.Duration) error {
	subject, body := passwordResetEmailTemplate(name, resetURL, expiry, s.appName)
	return s.send(ctx, "password_reset", to, subject, body, "url", resetURL)
}

func (s *EmailService) SendOTPEmail(ctx context.Context, to, name, code string, expiry time.Duration) error {
	subject, body := otpEmailTemplate(name, code, expiry, s.appName)
	return s.send(ctx, "password_otp", to, subject, body, "code", code)
}

func (s *EmailService) SendAccountDeletedEmail(ctx context.Context, to, name string) error {
	subject, body := accountDeletedEmailTemplate(name, s.appName)
	return s.send(ctx, "account_deleted", to, subject, body)
}

// devAttrs are logged in development mode only and never leave the process otherwise.
func (s *EmailService) send(ctx context.Context, kind, to, subject, body string, devAttrs ...any) error {
	if s.isDev {
		attrs := append([]any{"type", kind, "to", to, "subject", subject}, devAttrs...)
		slog.Info("email sent (dev mode)", attrs...)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	slog.Info("email sent", "type", kind, "to", to)
	return nil
}
