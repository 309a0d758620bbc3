package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prperemyshlev/storefront-service/internal/domain"
	"github.com/prperemyshlev/storefront-service/internal/dto"
	"github.com/prperemyshlev/storefront-service/internal/repository"
	"github.com/prperemyshlev/storefront-service/internal/utils"
	"github.com/prperemyshlev/storefront-service/pkg/observability"
	"go.uber.org/zap"
)

const tokenTypeBearer = "Bearer"

// authService implements AuthService interface
type authService struct {
	userRepo   repository.UserRepository
	codeRepo   repository.AuthCodeRepository
	jwtManager *utils.JWTManager
	codeExpiry time.Duration
	logger     *zap.Logger
	metrics    *observability.ShopMetrics
	now        Clock
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	codeRepo repository.AuthCodeRepository,
	jwtManager *utils.JWTManager,
	codeExpiry time.Duration,
	logger *zap.Logger,
	metrics *observability.ShopMetrics,
	clock Clock,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		codeRepo:   codeRepo,
		jwtManager: jwtManager,
		codeExpiry: codeExpiry,
		logger:     logger,
		metrics:    metrics,
		now:        clock.orDefault(),
	}
}

// Login issues a single-use authorization code for email, creating the user on first sight
func (s *authService) Login(ctx context.Context, email string) (*dto.LoginResponse, error) {
	email = utils.SanitizeEmail(email)
	if !utils.ValidateEmail(email) {
		return nil, ErrInvalidEmail
	}

	if _, err := s.getOrCreateUser(ctx, email); err != nil {
		return nil, err
	}

	value, err := utils.GenerateAuthorizationCode()
	if err != nil {
		return nil, err
	}

	now := s.now()
	code := &domain.AuthorizationCode{
		Code:      value,
		Email:     email,
		ExpiresAt: now.Add(s.codeExpiry),
		CreatedAt: now,
	}

	if err := s.codeRepo.Create(ctx, code); err != nil {
		return nil, fmt.Errorf("failed to save authorization code: %w", err)
	}

	s.metrics.CodeIssued(ctx)

	return &dto.LoginResponse{
		AuthorizationCode: value,
		ExpiresIn:         int(s.codeExpiry.Seconds()),
	}, nil
}

// getOrCreateUser returns the user for email, creating it if absent.
// A concurrent creator winning the race is treated as a lookup.
func (s *authService) getOrCreateUser(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user = &domain.User{Email: email, CreatedAt: s.now()}
	err = s.userRepo.Create(ctx, user)
	switch {
	case err == nil:
		s.logger.Info("User created", zap.String("user_id", user.ID))
		return user, nil
	case errors.Is(err, repository.ErrDuplicateEmail):
		return s.userRepo.GetByEmail(ctx, email)
	default:
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
}

// Redeem exchanges an authorization code for an access token, at most once
func (s *authService) Redeem(ctx context.Context, code string) (*dto.TokenResponse, error) {
	if code == "" || len(code) > utils.MaxCodeLength {
		return nil, ErrInvalidCode
	}

	authCode, err := s.codeRepo.MarkUsed(ctx, code, s.now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			s.metrics.CodeRedeemed(ctx, "not_found")
			return nil, ErrCodeNotFound
		case errors.Is(err, repository.ErrCodeUsed):
			s.metrics.CodeRedeemed(ctx, "already_used")
			return nil, ErrCodeAlreadyUsed
		case errors.Is(err, repository.ErrCodeExpired):
			s.metrics.CodeRedeemed(ctx, "expired")
			return nil, ErrCodeExpired
		default:
			return nil, fmt.Errorf("failed to redeem authorization code: %w", err)
		}
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(authCode.Email)
	if err != nil {
		s.logger.Error("Failed to issue token for redeemed code", zap.Error(err))
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.metrics.CodeRedeemed(ctx, "success")

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   s.jwtManager.GetAccessTokenExpiry(),
	}, nil
}

// UserExists reports whether a user with email has logged in before
func (s *authService) UserExists(ctx context.Context, email string) bool {
	_, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(email))
	return err == nil
}

// GetUser gets user information
func (s *authService) GetUser(ctx context.Context, email string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	response := dto.NewUserResponse(user)
	return &response, nil
}

// ValidateToken validates an access token
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	return claims, nil
}
