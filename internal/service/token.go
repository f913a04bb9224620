package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/civreg/civreg/internal/domain"
)

// TokenClaims is the payload carried by an issued token: subject id, role,
// issued-at and expiry.
type TokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenService issues and verifies signed, time-limited bearer tokens.
// Tokens are stateless: nothing is persisted server-side, so logout is
// purely a client concern.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService signing with the given secret.
// Tokens expire ttl after issuance.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed HS256 token for the given subject and role.
func (s *TokenService) Issue(userID int64, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Role: role,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the subject id and role.
// Expired tokens fail with domain.ErrTokenExpired; anything else that cannot
// be parsed or fails the signature check fails with domain.ErrTokenMalformed.
func (s *TokenService) Verify(tokenString string) (int64, string, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, "", domain.ErrTokenExpired
		}
		return 0, "", domain.ErrTokenMalformed
	}
	if !token.Valid {
		return 0, "", domain.ErrTokenMalformed
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, "", domain.ErrTokenMalformed
	}

	return userID, claims.Role, nil
}
