package utils

import (
	"time"

	"github.com/pquerna/otp/totp"
)

// GenerateTOTP returns the current time-based code for the shared secret.
func GenerateTOTP(secret string) (string, error) {
	return totp.GenerateCode(secret, time.Now())
}

// VerifyTOTP checks a submitted code against the shared secret within the
// default 30-second window.
func VerifyTOTP(secret, code string) bool {
	return totp.Validate(code, secret)
}
