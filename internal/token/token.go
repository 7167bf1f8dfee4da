package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/asanbekov/account-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const sessionTTL = 7 * 24 * time.Hour

// Manager issues and verifies the signed session credential carried in the
// "token" cookie. Stateless: a token is valid iff its HMAC checks out and it
// has not expired.
type Manager struct {
	key []byte
	ttl time.Duration
}

func NewManager(key []byte) *Manager {
	return &Manager{key: key, ttl: sessionTTL}
}

// TTL is the session lifetime, also used as the cookie max-age.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a session token for the given user ID, expiring in 7 days.
func (m *Manager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded user ID.
// Any malformed, tampered, or expired token maps to domain.ErrTokenInvalid.
func (m *Manager) Verify(raw string) (string, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.key, nil
	})
	if err != nil || !t.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrTokenInvalid
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return "", domain.ErrTokenInvalid
	}
	return userID, nil
}
