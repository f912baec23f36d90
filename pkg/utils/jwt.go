package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	sessionSecret string
	sessionExpiry time.Duration
)

// InitJWT initializes the session token secret and lifetime
func InitJWT(secret string, expiry time.Duration) {
	sessionSecret = secret
	sessionExpiry = expiry
}

// Claims represents JWT custom claims. RegisteredClaims.ID carries the session id.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a token bound to a server-side session
func GenerateSessionToken(sessionID string, userID uint, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(sessionExpiry)
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(sessionSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateSessionToken validates and parses a session token
func ValidateSessionToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(sessionSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.ID != "" {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// GetSessionExpiry returns the session token lifetime
func GetSessionExpiry() time.Duration {
	return sessionExpiry
}
