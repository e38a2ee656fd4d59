package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"festregistration/internal/domain"
)

type adminClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// JWTManager issues and verifies HS256 admin session tokens.
type JWTManager struct {
	secret []byte
}

// NewJWTManager returns a TokenIssuer/TokenVerifier pair backed by the given secret.
func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{secret: []byte(secret)}
}

var _ domain.TokenIssuer = (*JWTManager)(nil)
var _ domain.TokenVerifier = (*JWTManager)(nil)

func (m *JWTManager) Issue(userID, email string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := adminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (m *JWTManager) Verify(tokenString string) (string, error) {
	claims := &adminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", domain.ErrUnauthorized
	}
	return claims.Subject, nil
}
