package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const ownerKey = "owner"

// ErrMissingSecret is returned when tokens are issued or verified without a signing secret
var ErrMissingSecret = errors.New("jwt secret is not configured")

// IssueToken signs an HS256 token whose subject is ownerID.
func IssueToken(secret, ownerID string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	if ownerID == "" {
		return "", fmt.Errorf("owner id is required")
	}
	claims := jwt.RegisteredClaims{
		Subject:   ownerID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies tokenString and returns its subject.
func ParseToken(secret, tokenString string) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid token claims")
	}
	return claims.Subject, nil
}

// authMiddleware rejects requests without a valid bearer token and stores
// the token subject as the request owner.
func authMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		owner, err := ParseToken(secret, strings.TrimSpace(tokenString))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}
		c.Locals(ownerKey, owner)
		return c.Next()
	}
}

func ownerOf(c *fiber.Ctx) string {
	owner, _ := c.Locals(ownerKey).(string)
	return owner
}
