package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/martijn/jobtrack/internal/core/domain"
)

const (
	SessionLifetime = time.Hour
	sessionIssuer   = "jobtrack"
)

// SessionService issues the signed session tokens handed out after a
// successful login and validates them on protected requests.
type SessionService struct {
	jwtSecret    string
	jwtAlgorithm string
	now          func() time.Time
}

func NewSessionService(jwtSecret, jwtAlgorithm string) *SessionService {
	return &SessionService{
		jwtSecret:    jwtSecret,
		jwtAlgorithm: jwtAlgorithm,
		now:          time.Now,
	}
}

// SessionClaims represents JWT claims
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Email returns the login key the session was issued for.
func (c *SessionClaims) Email() string {
	return c.Subject
}

// Issue signs a session token for user.
func (s *SessionService) Issue(user *domain.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(SessionLifetime)

	claims := SessionClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
		},
	}

	token := jwt.NewWithClaims(s.signingMethod(), claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Validate parses tokenString and returns its claims if the signature,
// algorithm, issuer and lifetime all check out.
func (s *SessionService) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != s.signingMethod().Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	},
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}

func (s *SessionService) signingMethod() jwt.SigningMethod {
	switch s.jwtAlgorithm {
	case "HS384":
		return jwt.SigningMethodHS384
	case "HS512":
		return jwt.SigningMethodHS512
	default:
		return jwt.SigningMethodHS256
	}
}
