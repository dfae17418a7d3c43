package jwttoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "plantcare/pkg/domain-errors"
)

var issuedAt = time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestIssueAndParse(t *testing.T) {
	svc := NewService("garden-secret", WithClock(fixedClock(issuedAt)))

	raw, err := svc.Issue("ana", "pixel-7", 24*time.Hour)
	require.NoError(t, err)

	claims, err := svc.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Subject)
	assert.Equal(t, "pixel-7", claims.Device)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.Time.Equal(issuedAt.Add(24*time.Hour)))
}

func TestIssueRequiresGardener(t *testing.T) {
	_, err := NewService("k").Issue("", "pixel-7", time.Hour)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestParseRejects(t *testing.T) {
	signer := NewService("garden-secret", WithClock(fixedClock(issuedAt)))
	valid, err := signer.Issue("ana", "", time.Hour)
	require.NoError(t, err)

	foreign, err := NewService("other-secret", WithClock(fixedClock(issuedAt))).Issue("ana", "", time.Hour)
	require.NoError(t, err)

	wrongAudience := signer.sign(t, jwt.RegisteredClaims{
		Subject:   "ana",
		Issuer:    Issuer,
		Audience:  jwt.ClaimStrings{"someone-else"},
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	})
	noExpiry := signer.sign(t, jwt.RegisteredClaims{
		Subject:  "ana",
		Issuer:   Issuer,
		Audience: jwt.ClaimStrings{Audience},
	})

	tests := []struct {
		name    string
		raw     string
		at      time.Time
		message string
	}{
		{"garbage", "not-a-token", issuedAt, "invalid token"},
		{"other key", foreign, issuedAt, "invalid token"},
		{"wrong audience", wrongAudience, issuedAt, "invalid token"},
		{"missing expiry", noExpiry, issuedAt, "invalid token"},
		{"expired", valid, issuedAt.Add(2 * time.Hour), "token has expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := NewService("garden-secret", WithClock(fixedClock(tt.at)))
			_, err := verifier.Parse(tt.raw)
			require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, tt.message))
		})
	}
}

func TestLeewayAcceptsSlightlyExpiredToken(t *testing.T) {
	raw, err := NewService("k", WithClock(fixedClock(issuedAt))).Issue("ana", "", time.Minute)
	require.NoError(t, err)

	late := fixedClock(issuedAt.Add(90 * time.Second))

	_, err = NewService("k", WithClock(late)).Parse(raw)
	require.Error(t, err)

	_, err = NewService("k", WithClock(late), WithLeeway(time.Minute)).Parse(raw)
	require.NoError(t, err)
}

func TestValidateTokenForMiddleware(t *testing.T) {
	svc := NewService("k")
	raw, err := svc.Issue("ana", "ipad", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Subject)
	assert.NotEmpty(t, claims.JTI)
}

func (s *Service) sign(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, DeviceClaims{RegisteredClaims: claims}).SignedString(s.key)
	require.NoError(t, err)
	return raw
}
