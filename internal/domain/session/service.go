package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Issue(subject string, ttl time.Duration) (string, error)
	IssuePair(subject string) (TokenPair, error)
	Verify(token string) (string, error)
}

// TokenPair is an access/refresh token set with lifetimes in seconds.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	ExpiresIn        int
	RefreshExpiresIn int
}

type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        *slog.Logger
}

func NewService(secret string, accessTTL, refreshTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

func (s *Service) Issue(subject string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

func (s *Service) IssuePair(subject string) (TokenPair, error) {
	access, err := s.Issue(subject, s.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.Issue(subject, s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		ExpiresIn:        int(s.accessTTL.Seconds()),
		RefreshExpiresIn: int(s.refreshTTL.Seconds()),
	}, nil
}

// Verify checks signature and expiry and returns the token subject. Any
// failure is an authentication failure, never a system error.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
