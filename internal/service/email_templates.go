package service

import (
	"fmt"
	"time"
)

func welcomeEmailTemplate(name, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready. Start saving the pins you love and follow creators to fill your feed.

Best,
The %s Team`, name, appName)

	return subject, body
}

func passwordResetEmailTemplate(name, resetURL string, expiry time.Duration, appName string) (string, string) {
	subject := fmt.Sprintf("Reset your %s password", appName)
	body := fmt.Sprintf(`Hi %s,

Click the link below to reset your password:
%s

This link expires in %s and can only be used once.

If you didn't request this, you can safely ignore this email. Your password won't be changed.

Best,
The %s Team`, name, resetURL, humanDuration(expiry), appName)

	return subject, body
}

func otpEmailTemplate(name, code string, expiry time.Duration, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s verification code", appName)
	body := fmt.Sprintf(`Hi %s,

Your one-time code is: %s

It expires in %s. Enter it on the password reset page to continue.

If you didn't request this, you can safely ignore this email.

Best,
The %s Team`, name, code, humanDuration(expiry), appName)

	return subject, body
}

func accountDeletedEmailTemplate(name, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s account has been deleted", appName)
	body := fmt.Sprintf(`Hi %s,

Your account, pins and comments have been permanently deleted.

We're sorry to see you go.

Best,
The %s Team`, name, appName)

	return subject, body
}

func humanDuration(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		return pluralize(int(d/time.Hour), "hour")
	}
	if d >= time.Minute {
		return pluralize(int(d/time.Minute), "minute")
	}
	return pluralize(int(d/time.Second), "second")
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
