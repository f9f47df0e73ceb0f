package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// SessionTTL is how long a session token stays valid
const SessionTTL = 30 * 24 * time.Hour

// SessionClaims represents the claims in a session token
type SessionClaims struct {
	jwt.RegisteredClaims
	ProfileID uuid.UUID `json:"profile_id"`
}

// SessionService issues tokens bound to the single local profile
type SessionService struct {
	secret []byte
}

var _ ISessionService = (*SessionService)(nil)

// NewSessionService creates a new SessionService instance
func NewSessionService(secret string) *SessionService {
	return &SessionService{secret: []byte(secret)}
}

// GenerateToken signs a token for the profile
func (s *SessionService) GenerateToken(profileID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profileID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
		ProfileID: profileID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses a token and returns its claims
func (s *SessionService) ValidateToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.ProfileID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
