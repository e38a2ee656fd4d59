package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"festregistration/internal/domain"
)

type authService struct {
	adminRepo   domain.AdminRepository
	hasher      domain.PasswordHasher
	tokens      domain.TokenIssuer
	tokenExpiry time.Duration
}

// NewAuthService creates the admin authentication service.
func NewAuthService(
	adminRepo domain.AdminRepository,
	hasher domain.PasswordHasher,
	tokens domain.TokenIssuer,
	tokenExpiry time.Duration,
) domain.AuthService {
	return &authService{
		adminRepo:   adminRepo,
		hasher:      hasher,
		tokens:      tokens,
		tokenExpiry: tokenExpiry,
	}
}

// Login verifies the admin's credentials and issues a session token.
// Unknown email and wrong password both map to ErrUnauthorized so the
// response does not reveal which admin accounts exist.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", fmt.Errorf("get admin: %w", err)
	}
	if err := s.hasher.Compare(admin.PasswordHash, admin.PasswordSalt, password); err != nil {
		return "", domain.ErrUnauthorized
	}
	token, err := s.tokens.Issue(admin.ID, admin.Email, s.tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
