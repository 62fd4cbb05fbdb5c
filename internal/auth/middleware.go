package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/domain"
	apperrors "github.com/ArigalaPunithKumar/Alumnus-Backend/pkg/util"
)

const principalKey = "auth_principal"

// TokenVerifier verifies bearer tokens.
type TokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}

// AuthMiddleware validates bearer tokens and attaches principals.
type AuthMiddleware struct {
	tokens TokenVerifier
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], domain.TokenTypeBearer) || strings.TrimSpace(parts[1]) == "" {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	principal, err := m.tokens.Verify(strings.TrimSpace(parts[1]))
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenExpired) {
			m.logger.Debug("expired bearer token", zap.String("path", c.Path()))
		} else {
			m.logger.Warn("rejected bearer token", zap.String("path", c.Path()), zap.Error(err))
		}
		return err
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated principal.
func PrincipalFromContext(c *fiber.Ctx) (domain.Principal, bool) {
	principal, ok := c.Locals(principalKey).(domain.Principal)
	return principal, ok
}
