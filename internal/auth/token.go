package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/domain"
	apperrors "github.com/ArigalaPunithKumar/Alumnus-Backend/pkg/util"
)

// TokenManager issues and verifies signed access tokens. Tokens are
// stateless: validity depends only on signature and expiry.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Claims describes JWT payload.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for principal.
func (tm *TokenManager) Issue(principal domain.Principal) (domain.Token, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		Role: principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return domain.Token{}, err
	}
	return domain.Token{
		AccessToken: signed,
		TokenType:   domain.TokenTypeBearer,
		ExpiresAt:   expiresAt,
	}, nil
}

// Verify validates the token and returns its principal. Failures are either
// ErrTokenExpired or ErrTokenInvalid.
func (tm *TokenManager) Verify(tokenStr string) (domain.Principal, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, apperrors.ErrTokenExpired.Wrap(err)
		}
		return domain.Principal{}, apperrors.ErrTokenInvalid.Wrap(err)
	}
	if !parsed.Valid || claims.Subject == "" || !claims.Role.Valid() {
		return domain.Principal{}, apperrors.ErrTokenInvalid
	}
	return domain.Principal{Email: claims.Subject, Role: claims.Role}, nil
}

// TTL returns the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}
