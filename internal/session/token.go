package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Manager issues and verifies the signed cookie that binds a browser to
// its session ID. The ID is what namespaces the cart and auth keys in
// storage; the cookie itself carries no user data.
type Manager struct {
	secretKey []byte
	ttl       time.Duration
	logger    zerolog.Logger
}

type cookieClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func NewManager(secret string, logger zerolog.Logger) *Manager {
	return &Manager{
		secretKey: []byte(secret),
		ttl:       30 * 24 * time.Hour,
		logger:    logger,
	}
}

// Issue mints a fresh session ID and the signed token that carries it.
func (m *Manager) Issue() (string, string, error) {
	sessionID := uuid.NewString()

	now := time.Now()
	claims := &cookieClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		m.logger.Error().Err(err).Msg("Error signing session token")
		return "", "", err
	}

	return sessionID, signed, nil
}

// Parse extracts the session ID from a signed token.
func (m *Manager) Parse(tokenString string) (string, error) {
	claims := &cookieClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secretKey, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.SessionID == "" {
		return "", errors.New("invalid session token")
	}

	return claims.SessionID, nil
}
