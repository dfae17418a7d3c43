package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"plantcare/internal/platform/middleware"
	dErrors "plantcare/pkg/domain-errors"
)

const (
	Issuer   = "plantcare"
	Audience = "plantcare-app"
)

// DeviceClaims identify the gardener (Subject) and the app install making
// requests on their behalf.
type DeviceClaims struct {
	Device string `json:"device,omitempty"`
	jwt.RegisteredClaims
}

type Option func(*Service)

// WithLeeway tolerates clock skew between the phone and the server.
func WithLeeway(d time.Duration) Option {
	return func(s *Service) { s.leeway = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service issues and verifies HS256 device tokens.
type Service struct {
	key      []byte
	issuer   string
	audience string
	leeway   time.Duration
	now      func() time.Time
}

var _ middleware.JWTValidator = (*Service)(nil)

func NewService(signingKey string, opts ...Option) *Service {
	s := &Service{
		key:      []byte(signingKey),
		issuer:   Issuer,
		audience: Audience,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Issue(gardener, device string, ttl time.Duration) (string, error) {
	if gardener == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "gardener is required")
	}
	issued := s.now()
	claims := DeviceClaims{
		Device: device,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   gardener,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

func (s *Service) Parse(raw string) (*DeviceClaims, error) {
	claims := &DeviceClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
	default:
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
}

func (s *Service) keyFunc(*jwt.Token) (any, error) { return s.key, nil }

// ValidateToken satisfies middleware.JWTValidator.
func (s *Service) ValidateToken(raw string) (*middleware.JWTClaims, error) {
	claims, err := s.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &middleware.JWTClaims{Subject: claims.Subject, JTI: claims.ID}, nil
}
