// Package security provides password hashing and session token helpers.
package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vibetravel/vibetravel/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("security: hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether a plaintext password matches a hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ErrInvalidToken indicates a session token failed validation.
var ErrInvalidToken = errors.New("invalid token")

// sessionClaims are the JWT claims carried by a session token.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// SignSessionToken issues an HS256 session token for a user.
func SignSessionToken(userID uuid.UUID, cfg config.JWTConfig) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("security: jwt secret is not configured")
	}
	now := time.Now().UTC()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.Expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("security: sign token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken validates a session token and returns the user ID.
func ParseSessionToken(tokenString string, cfg config.JWTConfig) (uuid.UUID, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}
	userID, errParse := uuid.Parse(claims.Subject)
	if errParse != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}
