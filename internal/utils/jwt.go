package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the payload of the admin_session cookie.
type SessionClaims struct {
	SessionID    string `json:"sid"`
	AdminID      string `json:"admin_id"`
	Username     string `json:"username"`
	BackendToken string `json:"backend_token"`
	jwt.RegisteredClaims
}

// ErrInvalidSession is returned for tokens that fail validation.
var ErrInvalidSession = errors.New("invalid session token")

// GenerateSessionToken creates a signed JWT for the provided session.
func GenerateSessionToken(secret string, sessionID uuid.UUID, adminID, username, backendToken string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		SessionID:    sessionID.String(),
		AdminID:      adminID,
		Username:     username,
		BackendToken: backendToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID.String(),
			Subject:   adminID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken validates the token and returns its claims.
func ParseSessionToken(secret, tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}
	if _, err := uuid.Parse(claims.SessionID); err != nil || claims.BackendToken == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// SessionUUID returns the parsed session id.
func (c *SessionClaims) SessionUUID() uuid.UUID {
	id, _ := uuid.Parse(c.SessionID)
	return id
}
