package validation

import (
	"errors"
	"net/mail"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var emailCaser = cases.Lower(language.Und)

// NormalizeEmail trims and lower-cases an address; stored emails and lookups
// both go through it so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return emailCaser.String(strings.TrimSpace(email))
}

// ValidateEmail validates email format and length (RFC 5322 via net/mail).
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email address is required")
	}

	// RFC 5321: max 254 characters including @
	if len(email) > 254 {
		return errors.New("email address is too long (max 254 characters)")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("invalid email address format")
	}

	return nil
}
