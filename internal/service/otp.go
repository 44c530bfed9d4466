package service

import (
	"fmt"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

// GenerateOTP returns a 6-digit numeric one-time code. Each code is derived
// from a freshly generated secret, so codes are independent of each other.
func GenerateOTP() (string, error) {
	key, err := hotp.Generate(hotp.GenerateOpts{
		Issuer:      "SnapNest",
		AccountName: "password-reset",
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate otp secret: %w", err)
	}

	code, err := hotp.GenerateCodeCustom(key.Secret(), 0, hotp.ValidateOpts{
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate otp code: %w", err)
	}

	return code, nil
}
