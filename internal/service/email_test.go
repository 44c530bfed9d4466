package service_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/snapnest/snapnest/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestEmailService_DevModeLogsOTPCode(t *testing.T) {
	buf := captureLog(t)
	mailer := service.NewEmailService("", "noreply@snapnest.test", "SnapNest", true)

	require.NoError(t, mailer.SendOTPEmail(context.Background(), "ann@x.com", "Ann", "482913", 10*time.Minute))

	assert.Contains(t, buf.String(), "type=password_otp")
	assert.Contains(t, buf.String(), "code=482913")
}

func TestEmailService_DevModeLogsResetURL(t *testing.T) {
	buf := captureLog(t)
	mailer := service.NewEmailService("", "noreply@snapnest.test", "SnapNest", true)

	url := "http://localhost:5173/reset-password/abc"
	require.NoError(t, mailer.SendPasswordResetEmail(context.Background(), "ann@x.com", "Ann", url, time.Hour))
	require.NoError(t, mailer.SendWelcomeEmail(context.Background(), "ann@x.com", "Ann"))

	assert.Contains(t, buf.String(), "url="+url)
	assert.NotContains(t, buf.String(), "code=")
}

func TestEmailService_ProductionRequiresAPIKey(t *testing.T) {
	mailer := service.NewEmailService("", "noreply@snapnest.test", "SnapNest", false)

	err := mailer.SendOTPEmail(context.Background(), "ann@x.com", "Ann", "482913", 10*time.Minute)
	assert.ErrorContains(t, err, "RESEND_API_KEY")
}
