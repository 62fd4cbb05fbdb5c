package social

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClientID = "client-123.apps.googleusercontent.com"

func newTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signGoogleToken(t *testing.T, key *rsa.PrivateKey, mutate func(*googleClaims)) string {
	t.Helper()
	claims := &googleClaims{
		Email:         "jane@gmail.com",
		EmailVerified: true,
		Name:          "Jane Doe",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://accounts.google.com",
			Subject:   "1098",
			Audience:  jwt.ClaimStrings{testClientID},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	if mutate != nil {
		mutate(claims)
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func staticKey(key *rsa.PrivateKey) jwt.Keyfunc {
	return func(*jwt.Token) (interface{}, error) { return &key.PublicKey, nil }
}

func TestGoogleVerifierAcceptsValidToken(t *testing.T) {
	key := newTestKey(t)
	v := NewGoogleVerifier(testClientID, staticKey(key))

	id, err := v.Verify(context.Background(), signGoogleToken(t, key, nil))
	require.NoError(t, err)
	assert.Equal(t, Identity{Provider: "google", Subject: "1098", Email: "jane@gmail.com", Name: "Jane Doe"}, id)
}

func TestGoogleVerifierAcceptsStringEmailVerified(t *testing.T) {
	key := newTestKey(t)
	v := NewGoogleVerifier(testClientID, staticKey(key))

	token := signGoogleToken(t, key, func(c *googleClaims) {
		c.Issuer = "accounts.google.com"
		c.EmailVerified = "true"
	})
	_, err := v.Verify(context.Background(), token)
	assert.NoError(t, err)
}

func TestGoogleVerifierRejects(t *testing.T) {
	key := newTestKey(t)
	other := newTestKey(t)

	tests := []struct {
		name    string
		token   func() string
		wantErr error
	}{
		{"wrong audience", func() string {
			return signGoogleToken(t, key, func(c *googleClaims) { c.Audience = jwt.ClaimStrings{"someone-else"} })
		}, ErrInvalidToken},
		{"wrong issuer", func() string {
			return signGoogleToken(t, key, func(c *googleClaims) { c.Issuer = "https://evil.example.com" })
		}, ErrInvalidToken},
		{"expired", func() string {
			return signGoogleToken(t, key, func(c *googleClaims) { c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute)) })
		}, ErrInvalidToken},
		{"foreign signing key", func() string {
			return signGoogleToken(t, other, nil)
		}, ErrInvalidToken},
		{"missing email", func() string {
			return signGoogleToken(t, key, func(c *googleClaims) { c.Email = "" })
		}, ErrInvalidToken},
		{"unverified email", func() string {
			return signGoogleToken(t, key, func(c *googleClaims) { c.EmailVerified = false })
		}, ErrEmailNotVerified},
		{"hmac token", func() string {
			signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"aud": testClientID}).SignedString([]byte("k"))
			require.NoError(t, err)
			return signed
		}, ErrInvalidToken},
		{"garbage", func() string { return "not-a-token" }, ErrInvalidToken},
	}

	v := NewGoogleVerifier(testClientID, staticKey(key))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tt.token())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	v := NewGoogleVerifier(testClientID, nil)
	r.Register("Google", v)

	got, ok := r.Lookup(" GOOGLE ")
	require.True(t, ok)
	assert.Same(t, v, got)

	_, ok = r.Lookup("facebook")
	assert.False(t, ok)
	assert.Equal(t, []string{"google"}, r.Providers())

	var nilRegistry *Registry
	_, ok = nilRegistry.Lookup("google")
	assert.False(t, ok)
}
