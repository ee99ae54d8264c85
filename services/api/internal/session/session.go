package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/jkbrookover/events-ii/services/api/internal/clock"
)

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrSessionExpired = errors.New("session expired")
)

const DefaultTTL = 24 * time.Hour

// Manager issues and verifies signed session tokens carrying a user id.
type Manager struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewManager(secret []byte, ttl time.Duration, clk clock.Clock) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		secret: secret,
		ttl:    ttl,
		clock:  clk,
	}
}

// Issue returns a signed token identifying userID, valid for the manager TTL.
func (m *Manager) Issue(userID string) (string, error) {
	if userID == "" {
		return "", ErrInvalidSession
	}
	now := m.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify returns the user id held by the token. Expiry is checked against
// the manager's clock rather than the library default, so tests can pin time.
func (m *Manager) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if _, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}); err != nil {
		return "", ErrInvalidSession
	}
	if claims.Subject == "" {
		return "", ErrInvalidSession
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(m.clock.Now()) {
		return "", ErrSessionExpired
	}
	return claims.Subject, nil
}
