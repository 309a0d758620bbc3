package utils

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// 43 symbols from nanoid's 64-character URL-safe alphabet carry 258 bits.
	authorizationCodeSize = 43
	paymentIntentIDSize   = 24
	paymentIntentPrefix   = "pi_"
)

// GenerateAuthorizationCode returns a URL-safe random code
func GenerateAuthorizationCode() (string, error) {
	code, err := gonanoid.New(authorizationCodeSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate authorization code: %w", err)
	}
	return code, nil
}

// GeneratePaymentIntentID returns a random, prefixed payment intent id
func GeneratePaymentIntentID() (string, error) {
	id, err := gonanoid.New(paymentIntentIDSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate payment intent id: %w", err)
	}
	return paymentIntentPrefix + id, nil
}
