package domain

import (
	"context"
	"time"
)

// AdminUser is a content-management panel user.
type AdminUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PasswordSalt string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminRepository defines storage for admin users.
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated admin.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated admin ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// AuthService authenticates admins for the content-management endpoints.
type AuthService interface {
	// Login returns a session token, or ErrUnauthorized for bad credentials.
	Login(ctx context.Context, email, password string) (string, error)
}
