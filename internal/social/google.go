package social

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ProviderGoogle is the registry name of the Google verifier.
const ProviderGoogle = "google"

var googleIssuers = map[string]struct{}{
	"accounts.google.com":         {},
	"https://accounts.google.com": {},
}

type googleClaims struct {
	Email         string `json:"email"`
	EmailVerified any    `json:"email_verified"`
	Name          string `json:"name"`
	jwt.RegisteredClaims
}

func (c googleClaims) emailVerified() bool {
	switch v := c.EmailVerified.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	}
	return false
}

// GoogleVerifier verifies Google Sign-In ID tokens.
type GoogleVerifier struct {
	clientID string
	keyFunc  jwt.Keyfunc
	now      func() time.Time
}

// NewGoogleVerifier builds a verifier that accepts ID tokens minted for
// clientID and signed by keys resolved through keyFunc.
func NewGoogleVerifier(clientID string, keyFunc jwt.Keyfunc) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID, keyFunc: keyFunc, now: time.Now}
}

// NewGoogleJWKS fetches Google's signing keys and refreshes them in the
// background. Call EndBackground on the result at shutdown.
func NewGoogleJWKS(jwksURL string, logger *zap.Logger) (*keyfunc.JWKS, error) {
	return keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshErrorHandler: func(err error) {
			logger.Warn("google jwks refresh failed", zap.Error(err))
		},
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
	})
}

// Verify implements Verifier.
func (v *GoogleVerifier) Verify(_ context.Context, token string) (Identity, error) {
	claims := &googleClaims{}
	_, err := jwt.ParseWithClaims(token, claims, v.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.clientID),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if _, ok := googleIssuers[claims.Issuer]; !ok {
		return Identity{}, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, claims.Issuer)
	}
	if claims.Email == "" || claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: missing email or subject", ErrInvalidToken)
	}
	if !claims.emailVerified() {
		return Identity{}, ErrEmailNotVerified
	}

	return Identity{
		Provider: ProviderGoogle,
		Subject:  claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
	}, nil
}
