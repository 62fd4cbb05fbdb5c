package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/domain"
	apperrors "github.com/ArigalaPunithKumar/Alumnus-Backend/pkg/util"
)

// RequireRole ensures the principal holds one of the allowed roles. With no
// roles given any authenticated principal passes.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowed) > 0 && !principal.HasRole(allowed...) {
			return apperrors.ErrAccessDenied
		}
		return c.Next()
	}
}

// RequireAnyRole ensures the caller is authenticated.
func RequireAnyRole() fiber.Handler {
	return RequireRole()
}
