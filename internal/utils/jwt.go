package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prperemyshlev/storefront-service/internal/domain"
)

// Token verification errors
var (
	ErrTokenInvalid          = errors.New("token is invalid")
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenAudienceMismatch = errors.New("token audience mismatch")
	ErrTokenIssuerMismatch   = errors.New("token issuer mismatch")
)

// JWTManager issues and verifies HS256 access tokens. Tokens are stateless:
// validity depends only on signature, issuer, audience and expiry.
type JWTManager struct {
	secret            []byte
	issuer            string
	audience          string
	accessTokenExpiry time.Duration
	now               func() time.Time
}

// JWTOption configures a JWTManager
type JWTOption func(*JWTManager)

// WithClock overrides the time source used for iat, exp and validation
func WithClock(now func() time.Time) JWTOption {
	return func(j *JWTManager) {
		j.now = now
	}
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret, issuer, audience string, accessTokenExpiry time.Duration, opts ...JWTOption) *JWTManager {
	j := &JWTManager{
		secret:            []byte(secret),
		issuer:            issuer,
		audience:          audience,
		accessTokenExpiry: accessTokenExpiry,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// GenerateAccessToken signs a new access token for subject
func (j *JWTManager) GenerateAccessToken(subject string) (string, error) {
	now := j.now()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    j.issuer,
		Audience:  jwt.ClaimStrings{j.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTokenExpiry)),
		ID:        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken verifies a token and returns its claims
func (j *JWTManager) ValidateToken(tokenString string) (*domain.TokenClaims, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(j.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenInvalidAudience):
			return nil, ErrTokenAudienceMismatch
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return nil, ErrTokenIssuerMismatch
		default:
			return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
		}
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}

	out := &domain.TokenClaims{
		Subject:   claims.Subject,
		Issuer:    claims.Issuer,
		Audience:  claims.Audience,
		ID:        claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}

	return out, nil
}

// GetAccessTokenExpiry returns the access token expiry duration in seconds
func (j *JWTManager) GetAccessTokenExpiry() int {
	return int(j.accessTokenExpiry.Seconds())
}

// ExtractFromAuthorizationHeader returns the token from an "Authorization: Bearer <token>"
// header value. Any other shape yields ok=false.
func ExtractFromAuthorizationHeader(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
