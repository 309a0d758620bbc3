package domain

import "time"

// AuthorizationCode is a short-lived, single-use credential bound to an email
type AuthorizationCode struct {
	Code      string    `json:"code"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired reports whether the code is past its expiry at now
func (c *AuthorizationCode) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// IsDead reports whether the code can never be redeemed again
func (c *AuthorizationCode) IsDead(now time.Time) bool {
	return c.Used || c.IsExpired(now)
}
