package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the JWT payload minted for a player secret.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTManager signs the long-lived tokens handed out as player secrets.
// Games run for days, not the lifetime of one HTTP request, so there is
// only one expiry here rather than an access/refresh pair.
type JWTManager struct {
	secret []byte
	expiry time.Duration
}

// NewJWTManager creates a JWTManager with the given signing secret.
func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		expiry: 7 * 24 * time.Hour,
	}
}

// GenerateRefreshToken signs a long-lived token identifying subject.
func (m *JWTManager) GenerateRefreshToken(subject string) (string, error) {
	claims := &Claims{
		UserID: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   subject,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}
