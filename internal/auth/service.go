package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDisabled           = errors.New("authentication is disabled")
)

const (
	tokenSubject = "sketchpad-editor"
	tokenTTL     = 24 * time.Hour
)

// Service exchanges the shared access key for signed session tokens.
type Service struct {
	accessKeyHash []byte
	jwtSecret     []byte
	now           func() time.Time
}

// NewService creates a service checking keys against accessKeyHash, a bcrypt
// hash. An empty hash disables authentication entirely.
func NewService(accessKeyHash, jwtSecret string) *Service {
	return &Service{
		accessKeyHash: []byte(accessKeyHash),
		jwtSecret:     []byte(jwtSecret),
		now:           time.Now,
	}
}

// Enabled reports whether requests need a token.
func (s *Service) Enabled() bool {
	return len(s.accessKeyHash) > 0
}

type TokenResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Exchange checks accessKey and issues a token for it.
func (s *Service) Exchange(accessKey string) (*TokenResult, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	if err := bcrypt.CompareHashAndPassword(s.accessKeyHash, []byte(accessKey)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken()
}

// ValidateToken verifies a token and returns its id.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithSubject(tokenSubject))
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid || claims.ID == "" {
		return "", errors.New("invalid token")
	}

	return claims.ID, nil
}

func (s *Service) issueToken() (*TokenResult, error) {
	now := s.now()
	expires := now.Add(tokenTTL)
	claims := jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Subject:   tokenSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &TokenResult{Token: signed, ExpiresAt: expires.UTC()}, nil
}
