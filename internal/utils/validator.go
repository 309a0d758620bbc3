package utils

import (
	"regexp"
	"strings"
)

const (
	// MaxEmailLength is the longest email accepted by login
	MaxEmailLength = 320
	// MaxCodeLength is the longest authorization code accepted by token exchange
	MaxCodeLength = 500
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates an email address
func ValidateEmail(email string) bool {
	if email == "" || len(email) > MaxEmailLength {
		return false
	}
	return emailRegex.MatchString(email)
}

// SanitizeEmail sanitizes an email address
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
