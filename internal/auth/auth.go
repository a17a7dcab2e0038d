// Package auth issues and resolves session tokens. A login produces a
// signed JWT whose lifetime is tracked in a token store, so a token is
// only valid while its session entry exists.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"issue-tracker/internal/entity"
)

// ErrInvalidToken is returned for missing, malformed, expired or revoked
// tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

const sessionTTL = 24 * time.Hour

// TokenStore maps an issued token to the user it authenticates.
type TokenStore interface {
	Save(ctx context.Context, token string, userID int, ttl time.Duration) error
	// Get returns the user id for a live token, or ErrInvalidToken.
	Get(ctx context.Context, token string) (int, error)
}

type sessionClaims struct {
	UserID   int    `json:"uid"`
	Username string `json:"name"`
	jwt.RegisteredClaims
}

// Manager signs session tokens and resolves them back to user ids.
type Manager struct {
	secret []byte
	store  TokenStore
}

func NewManager(secret string, store TokenStore) *Manager {
	return &Manager{secret: []byte(secret), store: store}
}

// Issue signs a token for the user and records the session.
func (m *Manager) Issue(ctx context.Context, user *entity.User) (string, error) {
	claims := &sessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
		},
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tkn.SignedString(m.secret)
	if err != nil {
		return "", err
	}

	if err := m.store.Save(ctx, signed, user.ID, sessionTTL); err != nil {
		return "", err
	}

	return signed, nil
}

// Resolve verifies the token signature and looks the session up in the
// store. Returns the authenticated user id.
func (m *Manager) Resolve(ctx context.Context, token string) (int, error) {
	if token == "" {
		return 0, ErrInvalidToken
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := m.store.Get(ctx, token)
	if err != nil {
		return 0, err
	}
	if userID != claims.UserID {
		return 0, ErrInvalidToken
	}

	return userID, nil
}
