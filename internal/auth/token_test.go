package auth

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/domain"
	apperrors "github.com/ArigalaPunithKumar/Alumnus-Backend/pkg/util"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", time.Hour)
	principal := domain.Principal{Email: "jane@x.com", Role: domain.RoleStudent}

	tok, err := tm.Issue(principal)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, 5*time.Second)

	got, err := tm.Verify(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, principal, got)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Minute)
	tok, err := tm.Issue(domain.Principal{Email: "u1@x.com", Role: domain.RoleAlumni})
	require.NoError(t, err)

	tm.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = tm.Verify(tok.AccessToken)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrTokenExpired))
	assert.False(t, errors.Is(err, apperrors.ErrTokenInvalid))
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenManager("right-secret", time.Hour).Issue(domain.Principal{Email: "u2@x.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = NewTokenManager("wrong-secret", time.Hour).Verify(tok.AccessToken)
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager("k", time.Hour).Verify("not.a.jwt")
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := &Claims{
		Role: domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "mallory@x.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewTokenManager("k", time.Hour).Verify(signed)
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	t.Parallel()

	claims := &Claims{
		Role: domain.Role("ROLE_ROOT"),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "mallory@x.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewTokenManager("k", time.Hour).Verify(signed)
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))
}

func TestNewTokenManagerDefaultsTTL(t *testing.T) {
	assert.Equal(t, time.Hour, NewTokenManager("k", 0).TTL())
}
