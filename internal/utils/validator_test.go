package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.com", "first.last+tag@shop.example.org", "x_y%z@sub-domain.io"}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{"", "plain", "@b.com", "a@", "a@b", "a b@c.com", strings.Repeat("a", 315) + "@b.com"}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestSanitizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", SanitizeEmail("  A@B.Com \n"))
}

func TestGenerateAuthorizationCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := GenerateAuthorizationCode()
		assert.NoError(t, err)
		assert.Len(t, code, authorizationCodeSize)
		assert.Regexp(t, `^[A-Za-z0-9_-]+$`, code)
		seen[code] = struct{}{}
	}
	assert.Len(t, seen, 100)
}

func TestGeneratePaymentIntentID(t *testing.T) {
	id, err := GeneratePaymentIntentID()
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "pi_"))
	assert.Len(t, id, len("pi_")+paymentIntentIDSize)
}
