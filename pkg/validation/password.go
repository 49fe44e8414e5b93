package validation

import (
	"errors"
	"unicode"
)

// Password policy violations, one per rule so callers can report the exact
// failure.
var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordNoDigit  = errors.New("password must contain at least one digit")
	ErrPasswordNoUpper  = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoLower  = errors.New("password must contain at least one lowercase letter")
)

const passwordMinLength = 8

// CheckPasswordPolicy validates a new password. Checks run in a fixed order
// (length, then digit, then uppercase, then lowercase) and stop at the first
// violation.
func CheckPasswordPolicy(pw string) error {
	if len(pw) < passwordMinLength {
		return ErrPasswordTooShort
	}
	var hasDigit, hasUpper, hasLower bool
	for _, r := range pw {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}
	if !hasDigit {
		return ErrPasswordNoDigit
	}
	if !hasUpper {
		return ErrPasswordNoUpper
	}
	if !hasLower {
		return ErrPasswordNoLower
	}
	return nil
}
